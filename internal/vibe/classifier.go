package vibe

import "strings"

// AppType is the category of application inferred from a vibe.
type AppType string

const (
	AppTypeTodo      AppType = "todo-app"
	AppTypeBlog      AppType = "blog"
	AppTypeEcommerce AppType = "ecommerce"
	AppTypeChat      AppType = "chat-app"
	AppTypeDashboard AppType = "dashboard"
	AppTypePortfolio AppType = "portfolio"
	AppTypeGeneral   AppType = "general-app"
)

// Complexity is the estimated build complexity of a vibe.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Urgency is the inferred delivery urgency of a vibe.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Style is the inferred visual style preference of a vibe.
type Style string

const (
	StyleModern       Style = "modern"
	StyleProfessional Style = "professional"
	StylePlayful      Style = "playful"
	StyleMinimal      Style = "minimal"
)

// Feature tags drawn from a closed vocabulary.
const (
	FeatureUserAuth   = "user-authentication"
	FeatureStorage    = "data-storage"
	FeatureAPIBackend = "api-backend"
	FeatureResponsive = "responsive-design"
	FeatureRealtime   = "real-time-updates"
	FeatureBasic      = "basic-functionality"
)

// Analysis is the transient classification of one user vibe. It is derived
// fresh on every invocation and never stored.
type Analysis struct {
	RawInput   string     `json:"raw_input"`
	AppType    AppType    `json:"app_type"`
	Features   []string   `json:"features"`
	Complexity Complexity `json:"complexity"`
	Urgency    Urgency    `json:"urgency"`
	Style      Style      `json:"style"`
}

// appTypeRules is the ordered classification table for app types. Order is
// the tie-break: when an input matches keywords from two groups, the
// earlier-declared group wins.
var appTypeRules = []struct {
	Type     AppType
	Keywords []string
}{
	{AppTypeTodo, []string{"todo", "task", "checklist", "to-do"}},
	{AppTypeBlog, []string{"blog", "article", "post", "cms"}},
	{AppTypeEcommerce, []string{"shop", "store", "ecommerce", "e-commerce", "sell", "product"}},
	{AppTypeChat, []string{"chat", "message", "messaging"}},
	{AppTypeDashboard, []string{"dashboard", "admin", "analytics"}},
	{AppTypePortfolio, []string{"portfolio", "showcase", "resume"}},
}

// featureRules is the feature extraction table. Unlike app types, every
// matching group contributes its tag (set union, not first-match).
var featureRules = []struct {
	Tag      string
	Keywords []string
}{
	{FeatureUserAuth, []string{"login", "auth", "account", "user", "sign in", "signup"}},
	{FeatureStorage, []string{"database", "storage", "save", "persist"}},
	{FeatureAPIBackend, []string{"api", "backend", "endpoint"}},
	{FeatureResponsive, []string{"responsive", "mobile"}},
	{FeatureRealtime, []string{"real-time", "realtime", "live", "websocket"}},
}

// complexityRules is checked in priority order high, medium, low.
var complexityRules = []struct {
	Level    Complexity
	Keywords []string
}{
	{ComplexityHigh, []string{"complex", "advanced", "enterprise", "scalable", "full-featured"}},
	{ComplexityMedium, []string{"moderate", "standard", "typical"}},
	{ComplexityLow, []string{"simple", "basic", "easy", "quick", "minimal"}},
}

var urgencyRules = []struct {
	Level    Urgency
	Keywords []string
}{
	{UrgencyHigh, []string{"urgent", "asap", "immediately", "right now", "today"}},
	{UrgencyLow, []string{"whenever", "no rush", "eventually", "someday"}},
}

var styleRules = []struct {
	Style    Style
	Keywords []string
}{
	{StyleModern, []string{"modern", "sleek", "trendy", "cutting-edge"}},
	{StylePlayful, []string{"fun", "playful", "colorful", "whimsical"}},
	{StyleMinimal, []string{"minimal", "clean", "simple"}},
	{StyleProfessional, []string{"professional", "corporate", "business"}},
}

// Analyze classifies a single free-text vibe. All classifiers are pure
// functions of the input, so repeated calls yield identical results.
func Analyze(input string) Analysis {
	return Analysis{
		RawInput:   input,
		AppType:    DetectAppType(input),
		Features:   ExtractFeatures(input),
		Complexity: AssessComplexity(input),
		Urgency:    DetectUrgency(input),
		Style:      DetectStyle(input),
	}
}

// DetectAppType returns the first app type whose keyword group matches the
// lower-cased input, falling back to general-app.
func DetectAppType(input string) AppType {
	lowered := strings.ToLower(input)
	for _, rule := range appTypeRules {
		if matchesAny(lowered, rule.Keywords) {
			return rule.Type
		}
	}
	return AppTypeGeneral
}

// ExtractFeatures accumulates every feature tag whose keyword group matches
// the input. When nothing matches it returns the basic-functionality
// singleton.
func ExtractFeatures(input string) []string {
	lowered := strings.ToLower(input)
	var features []string
	for _, rule := range featureRules {
		if matchesAny(lowered, rule.Keywords) {
			features = append(features, rule.Tag)
		}
	}
	if len(features) == 0 {
		return []string{FeatureBasic}
	}
	return features
}

// AssessComplexity returns the first matching complexity level in priority
// order high, medium, low, defaulting to medium.
func AssessComplexity(input string) Complexity {
	lowered := strings.ToLower(input)
	for _, rule := range complexityRules {
		if matchesAny(lowered, rule.Keywords) {
			return rule.Level
		}
	}
	return ComplexityMedium
}

// DetectUrgency returns the first matching urgency level, defaulting to
// medium.
func DetectUrgency(input string) Urgency {
	lowered := strings.ToLower(input)
	for _, rule := range urgencyRules {
		if matchesAny(lowered, rule.Keywords) {
			return rule.Level
		}
	}
	return UrgencyMedium
}

// DetectStyle returns the first matching style, defaulting to professional.
func DetectStyle(input string) Style {
	lowered := strings.ToLower(input)
	for _, rule := range styleRules {
		if matchesAny(lowered, rule.Keywords) {
			return rule.Style
		}
	}
	return StyleProfessional
}

func matchesAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
