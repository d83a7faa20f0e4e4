package models

// Sequence : explicit counter row, incremented in the same transaction as the insert it numbers.
type Sequence struct {
	Name  string `bun:",pk"`
	Value int64  `bun:",notnull,default:0"`
}
