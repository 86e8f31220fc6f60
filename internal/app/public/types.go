package public

import "time"

type ProfileResponse struct {
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	BalancePT int64     `json:"balance_pt"`
	CreatedAt time.Time `json:"created_at"`
}

type LedgerResponse struct {
	Items  []LedgerItem `json:"items"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type LedgerItem struct {
	ID          string    `json:"id"`
	AmountPT    int64     `json:"amount_pt"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	RefType     string    `json:"ref_type"`
	RefID       string    `json:"ref_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type LeaderboardResponse struct {
	Items  []LeaderboardItem `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type LeaderboardItem struct {
	AccountID string `json:"account_id"`
	Nickname  string `json:"nickname"`
	NetPT     int64  `json:"net_pt"`
}

type EventsResponse struct {
	Items  []EventItem `json:"items"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type EventItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SideA       string     `json:"side_a"`
	SideB       string     `json:"side_b"`
	Status      string     `json:"status"`
	WinningSide string     `json:"winning_side,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

type WagersResponse struct {
	Items  []WagerItem `json:"items"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type WagerItem struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Side      string    `json:"side"`
	StakePT   int64     `json:"stake_pt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ListingsResponse struct {
	Items  []ListingItem `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type ListingItem struct {
	ID             string    `json:"id"`
	OwnerAccountID string    `json:"owner_account_id"`
	Name           string    `json:"name"`
	PricePT        int64     `json:"price_pt"`
	UsageCount     int64     `json:"usage_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UsageResponse struct {
	Items  []UsageItem `json:"items"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type UsageItem struct {
	ListingID string    `json:"listing_id"`
	CostPT    int64     `json:"cost_pt"`
	TextLen   int       `json:"text_len"`
	CreatedAt time.Time `json:"created_at"`
}
