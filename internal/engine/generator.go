package engine

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

// Op is one TPTBM transaction type.
type Op int

const (
	OpUpdate Op = iota
	OpRead
	OpInsert
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpInsert:
		return "insert"
	default:
		return "update"
	}
}

// Key is a TPTBM primary key. Both parts are 1-based for populated rows.
type Key struct {
	VpnID int
	VpnNB int
}

func (k Key) String() string { return fmt.Sprintf("(%d, %d)", k.VpnID, k.VpnNB) }

// Row is one TPTBM record.
type Row struct {
	Key
	DirectoryNB      string
	LastCallingParty string
	Descr            string
}

// KeySource draws operations and keys for one worker. It is not safe for
// concurrent use; each worker owns its own.
type KeySource struct {
	faker          *gofakeit.Faker
	keyCount       int
	percentReads   int
	percentInserts int
}

// NewKeySource seeds a source. Seed 0 picks a random seed.
func NewKeySource(cfg Config, seed int64) *KeySource {
	return &KeySource{
		faker:          gofakeit.New(seed),
		keyCount:       cfg.KeyCount,
		percentReads:   cfg.PercentReads,
		percentInserts: cfg.PercentInserts,
	}
}

// NextOp picks read, insert or update from a 0..99 draw.
func (s *KeySource) NextOp() Op {
	if s.percentReads == 100 {
		return OpRead
	}
	n := s.faker.Number(0, 99)
	switch {
	case n < s.percentReads:
		return OpRead
	case n < s.percentReads+s.percentInserts:
		return OpInsert
	default:
		return OpUpdate
	}
}

// RandomKey returns a key inside the populated keyCount x keyCount square.
func (s *KeySource) RandomKey() Key {
	return Key{
		VpnID: s.faker.Number(1, s.keyCount),
		VpnNB: s.faker.Number(1, s.keyCount),
	}
}

// populatedRow builds the row stored for key during population.
func populatedRow(k Key) Row {
	return Row{
		Key:              k,
		DirectoryNB:      directoryNumber(k),
		LastCallingParty: "0000000000",
		Descr:            description(k),
	}
}

// insertedRow builds a row written by the insert path.
func insertedRow(k Key) Row {
	return Row{
		Key:              k,
		DirectoryNB:      directoryNumber(k),
		LastCallingParty: callingParty(k),
		Descr:            description(k),
	}
}

func directoryNumber(k Key) string {
	return truncate("55"+strconv.Itoa(k.VpnID)+strconv.Itoa(k.VpnNB), 10)
}

func callingParty(k Key) string {
	return truncate(strconv.Itoa(k.VpnID)+"x"+strconv.Itoa(k.VpnNB), 10)
}

func description(k Key) string {
	return truncate(fmt.Sprintf("<place holder for description of VPN %d extension %d>", k.VpnID, k.VpnNB), 100)
}

// truncate cuts s to limit runes so values fit their CHAR columns.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

func (r Row) values() []interface{} {
	return []interface{}{r.VpnID, r.VpnNB, r.DirectoryNB, r.LastCallingParty, r.Descr}
}
