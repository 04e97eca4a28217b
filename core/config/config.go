package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = map[reflect.Type]any{}
)

// Load parses environment variables into cfg using the env struct tags,
// caching the result per concrete type so repeated calls are free after the
// first. cfg must be a non-nil pointer to a struct.
func Load(cfg any) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("config: Load requires a non-nil pointer, got %T", cfg)
	}
	t := v.Elem().Type()

	cacheMu.RLock()
	cached, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached).Elem())
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Re-check: another goroutine may have populated the cache while we
	// waited for the write lock.
	if cached, ok := cache[t]; ok {
		v.Elem().Set(reflect.ValueOf(cached).Elem())
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	stored := reflect.New(t)
	stored.Elem().Set(v.Elem())
	cache[t] = stored.Interface()

	return nil
}

// MustLoad is Load but panics on error. Intended for application startup
// where a misconfigured environment should fail fast.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset clears the cache. Exposed for tests that need to reload a type with
// a mutated environment.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[reflect.Type]any{}
}
