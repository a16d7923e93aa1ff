package store

import "sync"

// keyedLocks выдает мьютекс на ключ. Мутации одной сущности
// сериализуются, мутации разных сущностей идут параллельно.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// get возвращает мьютекс для ключа, создавая его при первом обращении.
func (k *keyedLocks) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}
