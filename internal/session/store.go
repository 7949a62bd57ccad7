// Package session keeps recent draws in memory so the organizer can come back
// to the results page. Nothing is persisted; reveal links never depend on it.
package session

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/DoyleJ11/gift-exchange/internal/exchange"
	"github.com/DoyleJ11/gift-exchange/internal/i18n"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6
)

type Entry struct {
	Code          string
	Participants  []exchange.Participant
	CustomMessage string
	Language      i18n.Language
	CreatedAt     time.Time
}

type StoreMsg interface{ isStoreMsg() }

// Create stores Entry under a fresh code. Reply receives nil when no code
// could be generated.
type Create struct {
	Entry Entry
	Reply chan *Entry
}

type Get struct {
	Code  string
	Reply chan *Entry // nil when unknown or expired
}

type SetMessage struct {
	Code    string
	Message string
	Reply   chan *Entry
}

type Remove struct {
	Code string
}

// count is only sent by tests; the HTTP layer never asks for the store size.
type count struct {
	Reply chan int
}

type ShutdownStore struct{}

func (Create) isStoreMsg()        {}
func (Get) isStoreMsg()           {}
func (SetMessage) isStoreMsg()    {}
func (Remove) isStoreMsg()        {}
func (count) isStoreMsg()         {}
func (ShutdownStore) isStoreMsg() {}

type Store struct {
	inbox   chan StoreMsg
	entries map[string]*Entry
	ttl     time.Duration
	sweep   time.Duration
	now     func() time.Time
	newCode func() (string, error)
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewStore(parent context.Context, ttl, sweepEvery time.Duration) *Store {
	return newStore(parent, ttl, sweepEvery, time.Now, GenerateCode)
}

func newStore(parent context.Context, ttl, sweepEvery time.Duration, now func() time.Time, newCode func() (string, error)) *Store {
	ctx, cancel := context.WithCancel(parent)
	s := &Store{
		inbox:   make(chan StoreMsg, 64),
		entries: make(map[string]*Entry),
		ttl:     ttl,
		sweep:   sweepEvery,
		now:     now,
		newCode: newCode,
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

func (s *Store) Inbox() chan<- StoreMsg { return s.inbox }

// Done is closed once the store has stopped.
func (s *Store) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Store) loop() {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			clear(s.entries)
			return

		case <-ticker.C:
			s.evictExpired()

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Create:
				msg.Reply <- s.create(msg.Entry)

			case Get:
				msg.Reply <- s.lookup(msg.Code)

			case SetMessage:
				if e, ok := s.entries[msg.Code]; ok && !s.expired(e) {
					e.CustomMessage = msg.Message
				}
				msg.Reply <- s.lookup(msg.Code)

			case Remove:
				delete(s.entries, msg.Code)

			case count:
				msg.Reply <- len(s.entries)

			case ShutdownStore:
				clear(s.entries)
				s.cancel()
				return
			}
		}
	}
}

func (s *Store) create(e Entry) *Entry {
	for {
		code, err := s.newCode()
		if err != nil {
			return nil
		}
		if _, taken := s.entries[code]; taken {
			continue
		}
		e.Code = code
		e.CreatedAt = s.now()
		s.entries[code] = &e
		cp := e
		return &cp
	}
}

// lookup returns a copy so callers never share memory with the loop.
func (s *Store) lookup(code string) *Entry {
	e, ok := s.entries[code]
	if !ok {
		return nil
	}
	if s.expired(e) {
		delete(s.entries, code)
		return nil
	}
	cp := *e
	return &cp
}

func (s *Store) expired(e *Entry) bool {
	return s.now().Sub(e.CreatedAt) >= s.ttl
}

func (s *Store) evictExpired() {
	for code, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, code)
		}
	}
}

func GenerateCode() (string, error) {
	code := make([]byte, CodeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}
