// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package scanfmt

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the size of the plan cache used by Sscan and SscanNamed.
//
const DefaultCacheSize = 256

// A Cache is a bounded LRU cache of compiled plans. It is safe for concurrent
// use.
//
type Cache struct {
	c *lru.Cache
}

// NewCache returns a cache that holds at most size plans. It panics if size is
// not positive.
//
func NewCache(size int) *Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &Cache{c: c}
}

// key identifies a plan in a Cache. Names are length-prefixed so that no two
// name lists share an encoding.
//
type key struct {
	src   string
	names string
}

func cacheKey(src string, names []string) key {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(strconv.Itoa(len(n)))
		sb.WriteByte(':')
		sb.WriteString(n)
	}
	return key{src: src, names: sb.String()}
}

// Compile returns the cached plan for src and names, compiling and caching it
// if needed. Compile errors are not cached.
//
func (c *Cache) Compile(src string, names ...string) (*Plan, error) {
	key := cacheKey(src, names)
	if v, ok := c.c.Get(key); ok {
		return v.(*Plan), nil
	}
	p, err := Compile(src, names...)
	if err != nil {
		return nil, err
	}
	c.c.Add(key, p)
	return p, nil
}

// Len returns the number of cached plans.
//
func (c *Cache) Len() int {
	return c.c.Len()
}

// Purge empties the cache.
//
func (c *Cache) Purge() {
	c.c.Purge()
}

var defaultCache = NewCache(DefaultCacheSize)
