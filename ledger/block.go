package ledger

import "github.com/luca-patrignani/poker-battler/domain/combat"

// Block is one entry of the combat ledger.
type Block struct {
	Index     int          `json:"index"`
	Timestamp int64        `json:"timestamp"`
	PrevHash  string       `json:"prev_hash"`
	Hash      string       `json:"hash"`
	Event     combat.Event `json:"event"`
	Metadata  Metadata     `json:"metadata"`
}

type Metadata struct {
	Seed  int64             `json:"seed"`
	Extra map[string]string `json:"extra,omitempty"`
}
