package services

import "sync"

// KeyLock giữ một mutex riêng cho từng loại phòng, tuần tự hóa
// đoạn kiểm-tra-rồi-ghi của quy trình đặt phòng theo room type.
type KeyLock struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[uint]*sync.Mutex)}
}

// Lock khóa theo key và trả về hàm mở khóa
func (k *KeyLock) Lock(key uint) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
