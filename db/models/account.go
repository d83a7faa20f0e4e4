package models

// Account : Account Model
type Account struct {
	ID       int64  `bun:",pk,autoincrement"`
	Identity string `bun:",notnull,unique:account_identity_type"`
	Type     string `bun:",notnull,unique:account_identity_type"`
}
