package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// Blocklist menyimpan jti token yang sudah logout sampai token itu kedaluwarsa
type Blocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewBlocklist() *Blocklist {
	return &Blocklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *Blocklist) Add(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = expiresAt
}

func (b *Blocklist) Contains(jti string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.entries[jti]
	return ok
}

func (b *Blocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Purge membuang entri yang token-nya sudah kedaluwarsa, mengembalikan jumlah yang dibuang
func (b *Blocklist) Purge() int {
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for jti, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, jti)
			removed++
		}
	}
	return removed
}

// StartJanitor menjalankan Purge berkala sampai ctx selesai
func (b *Blocklist) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := b.Purge(); n > 0 {
					log.Printf("blocklist: %d token kedaluwarsa dibersihkan", n)
				}
			}
		}
	}()
}
