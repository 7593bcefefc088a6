package vibe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAppType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected AppType
	}{
		{
			name:     "simple_todo_list",
			input:    "I want a simple todo list",
			expected: AppTypeTodo,
		},
		{
			name:     "blog_with_articles",
			input:    "a blog where I post articles",
			expected: AppTypeBlog,
		},
		{
			name:     "online_shop",
			input:    "an online shop for sneakers",
			expected: AppTypeEcommerce,
		},
		{
			name:     "chat_application",
			input:    "realtime chat for my team",
			expected: AppTypeChat,
		},
		{
			name:     "admin_dashboard",
			input:    "analytics dashboard for sales",
			expected: AppTypeDashboard,
		},
		{
			name:     "portfolio_site",
			input:    "a portfolio to showcase my work",
			expected: AppTypePortfolio,
		},
		{
			name:     "no_keywords_falls_back_to_general",
			input:    "something nice for my grandma",
			expected: AppTypeGeneral,
		},
		{
			name:     "empty_input_falls_back_to_general",
			input:    "",
			expected: AppTypeGeneral,
		},
		{
			name:     "case_insensitive",
			input:    "A TODO APP PLEASE",
			expected: AppTypeTodo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectAppType(tt.input))
		})
	}
}

func TestDetectAppType_TieBreakByDeclarationOrder(t *testing.T) {
	// Blog is declared before ecommerce, so an input matching both keyword
	// groups resolves to blog.
	result := DetectAppType("a blog with a shop section")
	assert.Equal(t, AppTypeBlog, result)

	// Todo is declared first of all, so it wins over every later group.
	result = DetectAppType("todo list for my blog shop dashboard")
	assert.Equal(t, AppTypeTodo, result)
}

func TestExtractFeatures(t *testing.T) {
	t.Run("union_of_matching_groups", func(t *testing.T) {
		features := ExtractFeatures("build me an app with user login and a database")
		assert.Equal(t, []string{FeatureUserAuth, FeatureStorage}, features)
	})

	t.Run("no_match_returns_basic_singleton", func(t *testing.T) {
		features := ExtractFeatures("just a static page")
		assert.Equal(t, []string{FeatureBasic}, features)
	})

	t.Run("all_groups_can_match_at_once", func(t *testing.T) {
		features := ExtractFeatures("responsive mobile app with login, database, api backend and realtime updates")
		assert.Equal(t, []string{
			FeatureUserAuth,
			FeatureStorage,
			FeatureAPIBackend,
			FeatureResponsive,
			FeatureRealtime,
		}, features)
	})

	t.Run("order_follows_check_order_not_input_order", func(t *testing.T) {
		// Storage keyword appears before the auth keyword in the input, but
		// the returned tags always follow the declared check order.
		features := ExtractFeatures("database first, then user accounts")
		assert.Equal(t, []string{FeatureUserAuth, FeatureStorage}, features)
	})
}

func TestAssessComplexity(t *testing.T) {
	tests := []struct {
		input    string
		expected Complexity
	}{
		{"an enterprise scalable platform", ComplexityHigh},
		{"a standard website", ComplexityMedium},
		{"something simple and quick", ComplexityLow},
		{"hello", ComplexityMedium}, // no match defaults to medium
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, AssessComplexity(tt.input))
		})
	}
}

func TestAssessComplexity_HighWinsOverLow(t *testing.T) {
	// High is checked before low, so mixed signals resolve to high.
	assert.Equal(t, ComplexityHigh, AssessComplexity("a simple but scalable app"))
}

func TestDetectUrgency(t *testing.T) {
	assert.Equal(t, UrgencyHigh, DetectUrgency("need it asap"))
	assert.Equal(t, UrgencyLow, DetectUrgency("no rush at all"))
	assert.Equal(t, UrgencyMedium, DetectUrgency("a todo app"))
}

func TestDetectStyle(t *testing.T) {
	assert.Equal(t, StyleModern, DetectStyle("sleek and modern"))
	assert.Equal(t, StylePlayful, DetectStyle("fun and colorful"))
	assert.Equal(t, StyleMinimal, DetectStyle("clean minimal design"))
	assert.Equal(t, StyleProfessional, DetectStyle("corporate landing page"))
	assert.Equal(t, StyleProfessional, DetectStyle("a todo app")) // default
}

func TestAnalyze_PureAndIdempotent(t *testing.T) {
	input := "build me a todo app with user accounts"

	first := Analyze(input)
	second := Analyze(input)

	assert.Equal(t, first, second)
	assert.Equal(t, input, first.RawInput)
	assert.Equal(t, AppTypeTodo, first.AppType)
	assert.Equal(t, []string{FeatureUserAuth}, first.Features)
	assert.Equal(t, ComplexityMedium, first.Complexity)
	assert.Equal(t, UrgencyMedium, first.Urgency)
	assert.Equal(t, StyleProfessional, first.Style)
}
