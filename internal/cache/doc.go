// Package cache provides time-boxed memoization of provider search
// results. Searches can be slow and network-bound; repeating one within
// the TTL window answers from a per-provider JSON file instead.
//
// Each provider gets its own [Store], constructed with an injected base
// directory:
//
//	store := cache.NewStore(cfg.CacheDir, "nixpkgs")
//	if results, ok := store.Get("vim"); ok {
//	    return results
//	}
//	results := search(...)
//	store.Set("vim", results)
//
// Entries expire after [TTL] and are lazily evicted on read; there is
// no background sweeper. All storage failures are swallowed and degrade
// to cache misses.
package cache
