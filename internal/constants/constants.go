package constants

import "time"

// Company holds the initial economic state of a fresh playthrough and the
// terminal floors. Money and reputation at or below zero end the game.
var Company = struct {
	InitialMoney      int64
	InitialReputation int64
	InitialFanCount   int64
}{
	InitialMoney:      10_000_000,
	InitialReputation: 50,
	InitialFanCount:   0,
}

// Casting constrains roster selection and prices each signed trainee.
var Casting = struct {
	BatchSize     int
	MinSelection  int
	MaxSelection  int
	CostPerMember int64
}{
	BatchSize:     4,
	MinSelection:  2,
	MaxSelection:  5,
	CostPerMember: 2_000_000,
}

// Production prices a studio session. Costs are deducted at commit time and
// never refunded, even when generation fails and placeholder content ships.
var Production = struct {
	BaseCost        int64
	RetryCost       int64
	JapanSurcharge  int64
	GlobalSurcharge int64
}{
	BaseCost:        5_000_000,
	RetryCost:       2_500_000,
	JapanSurcharge:  1_000_000,
	GlobalSurcharge: 2_000_000,
}

// RankEffect is the (money, fanCount, reputation) delta applied after a
// chart result of the given rank.
type RankEffect struct {
	Money      int64
	FanCount   int64
	Reputation int64
}

// Rank labels as the judge collaborator returns them.
const (
	RankTop    = "1위"
	RankHigh   = "상위권"
	RankMid    = "중위권"
	RankLow    = "하위권"
	RankBottom = "나락"
)

// RankEffects maps each canonical chart rank to its economic outcome.
// Unrecognized rank strings resolve to the mid-tier row.
var RankEffects = map[string]RankEffect{
	RankTop:    {Money: 20_000_000, FanCount: 100_000, Reputation: 15},
	RankHigh:   {Money: 8_000_000, FanCount: 30_000, Reputation: 8},
	RankMid:    {Money: 2_000_000, FanCount: 5_000, Reputation: 2},
	RankLow:    {Money: -1_000_000, FanCount: -2_000, Reputation: -5},
	RankBottom: {Money: -5_000_000, FanCount: -10_000, Reputation: -15},
}

// Event holds the crisis-event trigger probabilities. Risk bonuses are
// additive per qualifying member, with no per-category cap; only the final
// probability is capped.
var Event = struct {
	BaseChance        float64
	ScandalBonus      float64
	ScandalThreshold  int
	RomanceBonus      float64
	RomanceThreshold  int
	ConflictBonus     float64
	ConflictThreshold int
	MaxChance         float64
	ChoiceCount       int
}{
	BaseChance:        0.30,
	ScandalBonus:      0.15,
	ScandalThreshold:  50,
	RomanceBonus:      0.10,
	RomanceThreshold:  60,
	ConflictBonus:     0.10,
	ConflictThreshold: 40,
	MaxChance:         0.80,
	ChoiceCount:       3,
}

// Judge holds the score buckets the judge contract maps a total score onto,
// plus the band used when a fallback verdict has to be fabricated.
var Judge = struct {
	TopThreshold   int
	HighThreshold  int
	MidThreshold   int
	LowThreshold   int
	FallbackBase   int
	FallbackSpread int
}{
	TopThreshold:   85,
	HighThreshold:  70,
	MidThreshold:   55,
	LowThreshold:   40,
	FallbackBase:   55,
	FallbackSpread: 25,
}

// Candidate holds the generation bands for trainee stats and risks.
var Candidate = struct {
	MinAge       int
	MaxAge       int
	StatFloor    int
	StatSpread   int
	PotentialMax int
	ScandalMax   int
	RomanceMax   int
	ConflictMax  int
}{
	MinAge:       16,
	MaxAge:       23,
	StatFloor:    60,
	StatSpread:   40,
	PotentialMax: 100,
	ScandalMax:   60,
	RomanceMax:   50,
	ConflictMax:  40,
}

// Collaborator holds the soft self-imposed deadlines for the four external
// generators. Hitting one routes to the fallback path deterministically
// instead of relying on an ambient host abort.
var Collaborator = struct {
	CastingTimeout time.Duration
	ProduceTimeout time.Duration
	JudgeTimeout   time.Duration
	EventTimeout   time.Duration
}{
	CastingTimeout: 60 * time.Second,
	ProduceTimeout: 60 * time.Second,
	JudgeTimeout:   45 * time.Second,
	EventTimeout:   45 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour,
	HealthCheckInterval: 10 * time.Minute,
}

var WebSocketConfig = struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
}{
	WriteTimeout:   10 * time.Second,
	PongTimeout:    60 * time.Second,
	PingInterval:   50 * time.Second,
	MaxMessageSize: 64 * 1024,
}

// Session holds the idle-session reaper tuning. A session with no triggers
// for IdleTTL is dropped on the next sweep.
var Session = struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}{
	IdleTTL:       30 * time.Minute,
	SweepInterval: time.Minute,
}

var Records = struct {
	LeaderboardKey  string
	LeaderboardSize int
	LeaderboardTTL  time.Duration
}{
	LeaderboardKey:  "idoltycoon:leaderboard",
	LeaderboardSize: 10,
	LeaderboardTTL:  5 * time.Minute,
}

var AIInputLimits = struct {
	MaxCompanyNameLength int
}{
	MaxCompanyNameLength: 40,
}
