package data

// User - a Telegram player and the wallet derived for it
type User struct {
	ID             int64
	Wallet         string
	AwaitingAmount bool
}

type Telegram struct {
	ID        int64
	UserName  string
	FirstName string
	LastName  string
}
