package solido

import "github.com/gagliardetto/solana-go"

// PubkeyAndEntry pairs a public key with its associated record inside an
// AccountMap.
type PubkeyAndEntry[T any] struct {
	Pubkey solana.PublicKey
	Entry  T
}

// AccountMap is a bounded, order-preserving association list from a public
// key to a small record. MaximumEntries is a runtime capacity fixed at
// construction (set by Initialize) rather than a compile-time array bound,
// since the Solido account's serialized size is determined once, at
// deployment, from operator-chosen capacities.
type AccountMap[T any] struct {
	Entries        []PubkeyAndEntry[T]
	MaximumEntries uint32
}

// NewAccountMap returns an empty map with the given capacity.
func NewAccountMap[T any](maximumEntries uint32) AccountMap[T] {
	return AccountMap[T]{
		Entries:        make([]PubkeyAndEntry[T], 0, maximumEntries),
		MaximumEntries: maximumEntries,
	}
}

func (m *AccountMap[T]) Len() int {
	return len(m.Entries)
}

func (m *AccountMap[T]) IsEmpty() bool {
	return len(m.Entries) == 0
}

// Add inserts pubkey->entry, failing if pubkey is already present or the map
// is at capacity.
func (m *AccountMap[T]) Add(pubkey solana.PublicKey, entry T) error {
	if uint32(len(m.Entries)) >= m.MaximumEntries {
		return NewError(ErrMaximumNumberOfAccountsExceeded, pubkey.String())
	}
	for _, e := range m.Entries {
		if e.Pubkey.Equals(pubkey) {
			return NewError(ErrDuplicatedEntry, pubkey.String())
		}
	}
	m.Entries = append(m.Entries, PubkeyAndEntry[T]{Pubkey: pubkey, Entry: entry})
	return nil
}

// Remove swap-removes pubkey's entry and returns its value. Order of the
// remaining live entries is not preserved across a removal.
func (m *AccountMap[T]) Remove(pubkey solana.PublicKey) (T, error) {
	var zero T
	idx := m.index(pubkey)
	if idx < 0 {
		return zero, NewError(ErrInvalidAccountMember, pubkey.String())
	}
	removed := m.Entries[idx].Entry
	last := len(m.Entries) - 1
	m.Entries[idx] = m.Entries[last]
	m.Entries = m.Entries[:last]
	return removed, nil
}

// Get returns a copy of pubkey's entry.
func (m *AccountMap[T]) Get(pubkey solana.PublicKey) (T, bool) {
	idx := m.index(pubkey)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return m.Entries[idx].Entry, true
}

// GetMut returns a pointer to pubkey's entry for in-place mutation.
func (m *AccountMap[T]) GetMut(pubkey solana.PublicKey) (*T, bool) {
	idx := m.index(pubkey)
	if idx < 0 {
		return nil, false
	}
	return &m.Entries[idx].Entry, true
}

func (m *AccountMap[T]) index(pubkey solana.PublicKey) int {
	for i, e := range m.Entries {
		if e.Pubkey.Equals(pubkey) {
			return i
		}
	}
	return -1
}

// Iterate calls fn for every live entry in append order.
func (m *AccountMap[T]) Iterate(fn func(pubkey solana.PublicKey, entry *T)) {
	for i := range m.Entries {
		fn(m.Entries[i].Pubkey, &m.Entries[i].Entry)
	}
}

// RequiredBytes returns the serialized size of the map at full capacity:
// 8 bytes of length framing plus (32 + entrySize) per slot, regardless of
// occupancy, since the on-chain account is preallocated.
func RequiredBytes(maximumEntries uint32, entrySize int) int {
	return 8 + (32+entrySize)*int(maximumEntries)
}
