package request

// RegisterUserRequest is the request body for registering or renaming a user
type RegisterUserRequest struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
}

// RecordGameRequest is the request body for recording a completed game
type RecordGameRequest struct {
	Identity       string `json:"identity"`
	Won            bool   `json:"won"`
	Difficulty     string `json:"difficulty"`
	TimeSpent      uint64 `json:"time_spent"`
	DailyChallenge bool   `json:"daily_challenge"`
}
