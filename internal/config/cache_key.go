package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CourseCatalogKey returns the cache key for the public list of all courses
func (r *CacheKeyStruct) CourseCatalogKey() string {
	return "catalog:courses"
}

// CourseCatalogGenKey returns the key of the counter bumped on every catalog invalidation
func (r *CacheKeyStruct) CourseCatalogGenKey() string {
	return "catalog:courses:gen"
}

var CacheKey = NewCacheKeyStruct()
