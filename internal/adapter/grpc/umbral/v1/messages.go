package umbralv1

// Amounts travel as decimal strings so no precision is lost on the wire.

type Preferences struct {
	AiNotifications bool `json:"ai_notifications"`
	EmailSummary    bool `json:"email_summary"`
}

type Profile struct {
	UserId           string       `json:"user_id"`
	Name             string       `json:"name"`
	Avatar           string       `json:"avatar,omitempty"`
	Currency         string       `json:"currency"`
	MonthlyIncome    string       `json:"monthly_income"`
	FirstMillionGoal string       `json:"first_million_goal"`
	NetWorth         string       `json:"net_worth"`
	Preferences      *Preferences `json:"preferences"`
	UpdatedAt        *Timestamp   `json:"updated_at,omitempty"`
}

type Envelope struct {
	Id             string     `json:"id"`
	Icon           string     `json:"icon"`
	Color          string     `json:"color"`
	Title          string     `json:"title"`
	Type           string     `json:"type"`
	Val            string     `json:"val"`
	Tot            string     `json:"tot"`
	Currency       string     `json:"currency"`
	Msg            string     `json:"msg"`
	Warn           bool       `json:"warn"`
	DueDate        string     `json:"due_date,omitempty"`
	FillPercentage string     `json:"fill_percentage"`
	CreatedAt      *Timestamp `json:"created_at,omitempty"`
}

type Account struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Balance     string     `json:"balance"`
	AssetType   string     `json:"asset_type"`
	Type        string     `json:"type"`
	Apy         string     `json:"apy,omitempty"`
	Color       string     `json:"color"`
	Label       string     `json:"label"`
	Subtitle    string     `json:"subtitle,omitempty"`
	LastUpdated *Timestamp `json:"last_updated,omitempty"`
}

type Rates struct {
	UsdRate   string     `json:"usd_rate"`
	BtcUsd    string     `json:"btc_usd"`
	EthUsd    string     `json:"eth_usd"`
	Source    string     `json:"source"`
	FetchedAt *Timestamp `json:"fetched_at,omitempty"`
}

type NetWorth struct {
	Total             string            `json:"total"`
	ByAsset           map[string]string `json:"by_asset"`
	SkippedAccountIds []string          `json:"skipped_account_ids,omitempty"`
}

type Allocation struct {
	TotalAssigned   string `json:"total_assigned"`
	ToAssign        string `json:"to_assign"`
	UsagePercentage string `json:"usage_percentage,omitempty"` // Empty when income is zero
	Status          string `json:"status"`
}

type Reminder struct {
	EnvelopeId    string `json:"envelope_id"`
	Title         string `json:"title"`
	DueDate       string `json:"due_date"`
	DaysRemaining int32  `json:"days_remaining"`
	Urgency       string `json:"urgency"`
	Label         string `json:"label"`
}

type ProjectionPoint struct {
	Index     int32  `json:"index"`
	Year      int32  `json:"year"`
	Baseline  string `json:"baseline"`
	Optimized string `json:"optimized"`
}

type GetProfileRequest struct{}

type UpdateProfileRequest struct {
	Name             *string      `json:"name,omitempty"`
	Avatar           *string      `json:"avatar,omitempty"`
	Currency         *string      `json:"currency,omitempty"`
	MonthlyIncome    *string      `json:"monthly_income,omitempty"`
	FirstMillionGoal *string      `json:"first_million_goal,omitempty"`
	NetWorth         *string      `json:"net_worth,omitempty"`
	Preferences      *Preferences `json:"preferences,omitempty"`
}

type ToggleCurrencyRequest struct{}

type ProfileResponse struct {
	Profile *Profile `json:"profile"`
}

// EnvelopeFields are the writable envelope fields; unset fields keep their value
type EnvelopeFields struct {
	Icon     *string `json:"icon,omitempty"`
	Color    *string `json:"color,omitempty"`
	Title    *string `json:"title,omitempty"`
	Type     *string `json:"type,omitempty"`
	Val      *string `json:"val,omitempty"`
	Tot      *string `json:"tot,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Msg      *string `json:"msg,omitempty"`
	Warn     *bool   `json:"warn,omitempty"`
	DueDate  *string `json:"due_date,omitempty"` // YYYY-MM-DD, empty clears
}

type ListEnvelopesRequest struct{}

type ListEnvelopesResponse struct {
	Envelopes []*Envelope `json:"envelopes"`
}

type CreateEnvelopeRequest struct {
	EnvelopeFields
}

type UpdateEnvelopeRequest struct {
	Id string `json:"id"`
	EnvelopeFields
}

type EnvelopeResponse struct {
	Envelope *Envelope `json:"envelope"`
}

type DeleteEnvelopeRequest struct {
	Id string `json:"id"`
}

// AccountFields are the writable account fields; unset fields keep their value
type AccountFields struct {
	Name      *string `json:"name,omitempty"`
	Balance   *string `json:"balance,omitempty"`
	AssetType *string `json:"asset_type,omitempty"`
	Type      *string `json:"type,omitempty"`
	Apy       *string `json:"apy,omitempty"` // Empty clears
	Color     *string `json:"color,omitempty"`
	Label     *string `json:"label,omitempty"`
	Subtitle  *string `json:"subtitle,omitempty"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

type CreateAccountRequest struct {
	AccountFields
}

type UpdateAccountRequest struct {
	Id string `json:"id"`
	AccountFields
}

type AccountResponse struct {
	Account *Account `json:"account"`
}

type DeleteAccountRequest struct {
	Id string `json:"id"`
}

type DeleteResponse struct{}

type GetRatesRequest struct{}

type GetRatesResponse struct {
	Rates *Rates `json:"rates"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Profile        *Profile    `json:"profile"`
	Rates          *Rates      `json:"rates,omitempty"`
	Envelopes      []*Envelope `json:"envelopes"`
	Accounts       []*Account  `json:"accounts"`
	NetWorth       *NetWorth   `json:"net_worth"`
	Allocation     *Allocation `json:"allocation"`
	MonthlySavings string      `json:"monthly_savings"`
	Reminders      []*Reminder `json:"reminders"`
}

type GetProjectionRequest struct {
	ExtraMonthly    string `json:"extra_monthly"`
	AnnualReturnPct string `json:"annual_return_pct"`
	Years           int32  `json:"years"`
}

type GetProjectionResponse struct {
	Points            []*ProjectionPoint `json:"points"`
	BaselineGoalYear  *int32             `json:"baseline_goal_year,omitempty"`
	OptimizedGoalYear *int32             `json:"optimized_goal_year,omitempty"`
	YearsSaved        int32              `json:"years_saved"`
	Goal              string             `json:"goal"`
	ChartCeiling      string             `json:"chart_ceiling"`
}

type AskRequest struct {
	Message string `json:"message"`
}

type AskResponse struct {
	Reply string `json:"reply"`
}

type GetInsightRequest struct{}

type GetInsightResponse struct {
	Insight string `json:"insight"`
}
