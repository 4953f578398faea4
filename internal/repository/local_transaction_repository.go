package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// keys: transactions/<userID> -> JSON array of transactions
const transactionsPrefix = "transactions/"

func transactionsKey(userID string) []byte { return []byte(transactionsPrefix + userID) }

// keyUpperBound returns the smallest key greater than every key with the given prefix.
func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// noExpiry disables the token age check of fernet.VerifyAndDecrypt.
const noExpiry = -1

// ErrLocalStoreDecrypt is returned when a stored value cannot be decrypted
// with the configured key.
var ErrLocalStoreDecrypt = errors.New("failed to decrypt local store value")

// ParseLocalStoreKey decodes a base64 fernet key. An empty string yields a
// nil key, which leaves values unencrypted.
func ParseLocalStoreKey(s string) (*fernet.Key, error) {
	if s == "" {
		return nil, nil
	}
	key, err := fernet.DecodeKey(s)
	if err != nil {
		return nil, fmt.Errorf("invalid local store key: %w", err)
	}
	return key, nil
}

// LocalTransactionRepository keeps each user's transaction list as a single
// JSON value in a pebble store. It backs the local, unauthenticated user.
// With a key, values are stored as fernet tokens.
type LocalTransactionRepository struct {
	db  *pebble.DB
	key *fernet.Key
}

// NewLocalTransactionRepository creates a repository on an open pebble store.
// key may be nil.
func NewLocalTransactionRepository(db *pebble.DB, key *fernet.Key) *LocalTransactionRepository {
	return &LocalTransactionRepository{db: db, key: key}
}

// Load returns the stored list, or an empty slice when nothing was saved yet.
func (r *LocalTransactionRepository) Load(_ context.Context, userID string) ([]model.Transaction, error) {
	data, closer, err := r.db.Get(transactionsKey(userID))
	if errors.Is(err, pebble.ErrNotFound) {
		return []model.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer closer.Close()

	if r.key != nil {
		data = fernet.VerifyAndDecrypt(data, noExpiry, []*fernet.Key{r.key})
		if data == nil {
			return nil, fmt.Errorf("%w for user %s", ErrLocalStoreDecrypt, userID)
		}
	}

	transactions := []model.Transaction{}
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}
	return transactions, nil
}

// Save overwrites the stored list.
func (r *LocalTransactionRepository) Save(_ context.Context, userID string, transactions []model.Transaction) error {
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	data, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("failed to marshal transactions: %w", err)
	}
	if r.key != nil {
		if data, err = fernet.EncryptAndSign(data, r.key); err != nil {
			return fmt.Errorf("failed to encrypt transactions: %w", err)
		}
	}
	if err := r.db.Set(transactionsKey(userID), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Users lists every user with a stored list.
func (r *LocalTransactionRepository) Users(_ context.Context) ([]string, error) {
	prefix := []byte(transactionsPrefix)
	iter, err := r.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var users []string
	for iter.First(); iter.Valid(); iter.Next() {
		users = append(users, string(iter.Key()[len(prefix):]))
	}
	return users, nil
}

var _ TransactionRepository = (*LocalTransactionRepository)(nil)
