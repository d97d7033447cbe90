package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// TestDefinitionsKey returns the cache key for the full set of test definitions
func (r *CacheKeyStruct) TestDefinitionsKey() string {
	return "tests:definitions"
}

// ResultBreakdownKey returns the cache key for a result's computed score breakdown
func (r *CacheKeyStruct) ResultBreakdownKey(resultID string) string {
	return fmt.Sprintf("result:%s:breakdown", resultID)
}

// ResultsMonitorChannel returns the Redis PubSub channel name for the live results stream
func (r *CacheKeyStruct) ResultsMonitorChannel() string {
	return "results:monitor"
}

var CacheKey = NewCacheKeyStruct()
