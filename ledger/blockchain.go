package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/luca-patrignani/poker-battler/domain/combat"
)

// ErrInvalidBlock is returned when a block does not chain onto its predecessor.
var ErrInvalidBlock = errors.New("invalid block")

const genesisKind combat.EventKind = "genesis"

// Blockchain is an append-only, hash-chained log of combat events. It
// implements combat.Recorder.
type Blockchain struct {
	mu     sync.RWMutex
	blocks []Block
	seed   int64
	now    func() time.Time
}

// NewBlockchain creates a chain holding only its genesis block. The seed of
// the game being recorded is stored in every block.
func NewBlockchain(seed int64) *Blockchain {
	bc := &Blockchain{seed: seed, now: time.Now}
	genesis := Block{
		Index:     0,
		Timestamp: bc.now().Unix(),
		PrevHash:  "0",
		Event:     combat.Event{Kind: genesisKind},
		Metadata:  Metadata{Seed: seed},
	}
	genesis.Hash = calculateHash(genesis)
	bc.blocks = []Block{genesis}
	return bc
}

// Record appends ev as a new block.
func (bc *Blockchain) Record(ev combat.Event) error {
	return bc.append(ev, nil)
}

// Annotate appends ev with extra metadata.
func (bc *Blockchain) Annotate(ev combat.Event, extra map[string]string) error {
	return bc.append(ev, extra)
}

func (bc *Blockchain) append(ev combat.Event, extra map[string]string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest := bc.blocks[len(bc.blocks)-1]
	block := Block{
		Index:     latest.Index + 1,
		Timestamp: bc.now().Unix(),
		PrevHash:  latest.Hash,
		Event:     ev,
		Metadata:  Metadata{Seed: bc.seed, Extra: extra},
	}
	block.Hash = calculateHash(block)
	if err := validateBlock(block, latest); err != nil {
		return err
	}
	bc.blocks = append(bc.blocks, block)
	return nil
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// GetByIndex retrieves a block by its index in the chain.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return bc.blocks[index], nil
}

// Len is the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Events lists the recorded events in order, without the genesis block.
func (bc *Blockchain) Events() []combat.Event {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]combat.Event, 0, len(bc.blocks)-1)
	for _, b := range bc.blocks[1:] {
		out = append(out, b.Event)
	}
	return out
}

// Verify checks the genesis block and that every later block chains onto
// the one before it with a correct hash.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return verify(bc.blocks)
}

func verify(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: empty chain", ErrInvalidBlock)
	}
	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("%w: bad genesis", ErrInvalidBlock)
	}
	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("%w: expected index %d, got %d", ErrInvalidBlock, previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("%w: prev hash %s does not match %s", ErrInvalidBlock, current.PrevHash, previous.Hash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("%w: expected hash %s, got %s", ErrInvalidBlock, expected, current.Hash)
	}
	return nil
}

// calculateHash hashes every field of the block except the hash itself.
func calculateHash(block Block) string {
	eventBytes, _ := json.Marshal(block.Event)
	metaBytes, _ := json.Marshal(block.Metadata)
	data := fmt.Sprintf("%d%d%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		eventBytes,
		metaBytes,
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// WriteTo writes the chain as indented JSON.
func (bc *Blockchain) WriteTo(w io.Writer) (int64, error) {
	bc.mu.RLock()
	data, err := json.MarshalIndent(bc.blocks, "", "  ")
	bc.mu.RUnlock()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(append(data, '\n'))
	return int64(n), err
}

// Save writes the chain to path.
func (bc *Blockchain) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := bc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a chain written by WriteTo and verifies it.
func Read(r io.Reader) (*Blockchain, error) {
	var blocks []Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, err
	}
	if err := verify(blocks); err != nil {
		return nil, err
	}
	return &Blockchain{blocks: blocks, seed: blocks[0].Metadata.Seed, now: time.Now}, nil
}

// Open reads and verifies the chain stored at path.
func Open(path string) (*Blockchain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
