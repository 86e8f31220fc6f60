package store

import "time"

const (
	RoleUser  = "user"
	RoleHouse = "house"
	RoleAdmin = "admin"
)

const (
	EventOpen     = "open"
	EventFinished = "finished"
)

const (
	WagerPending = "pending"
	WagerWon     = "won"
	WagerLost    = "lost"
)

type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	BalancePT int64     `json:"balance_pt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LedgerEntry struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	AmountPT    int64     `json:"amount_pt"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	RefType     string    `json:"ref_type"`
	RefID       string    `json:"ref_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SideA       string     `json:"side_a"`
	SideB       string     `json:"side_b"`
	Status      string     `json:"status"`
	WinningSide string     `json:"winning_side,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

type Wager struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	EventID   string    `json:"event_id"`
	Side      string    `json:"side"`
	StakePT   int64     `json:"stake_pt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Listing struct {
	ID             string    `json:"id"`
	OwnerAccountID string    `json:"owner_account_id"`
	Name           string    `json:"name"`
	PricePT        int64     `json:"price_pt"`
	Public         bool      `json:"public"`
	UsageCount     int64     `json:"usage_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type Purchase struct {
	ID             string    `json:"id"`
	BuyerAccountID string    `json:"buyer_account_id"`
	ListingID      string    `json:"listing_id"`
	PricePT        int64     `json:"price_pt"`
	CreatedAt      time.Time `json:"created_at"`
}

type UsageRecord struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	ListingID string    `json:"listing_id"`
	CostPT    int64     `json:"cost_pt"`
	TextLen   int       `json:"text_len"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	AccountID string `json:"account_id"`
	Nickname  string `json:"nickname"`
	NetPT     int64  `json:"net_pt"`
}
