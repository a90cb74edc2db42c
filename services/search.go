package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"hotel-manager/models"
)

// normalizeInput lowercases and strips accents so "João" matches "joao"
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// calculateSimilarity is 1 - levenshtein distance / longest length
func calculateSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// scoreClient ranks a client against a normalized query; 0 means no match
func scoreClient(query string, client models.Client) int {
	score := 0

	name := normalizeInput(client.Name)
	switch {
	case name == query:
		score += 30
	case strings.Contains(name, query):
		score += 20
	default:
		for _, word := range strings.Fields(name) {
			if calculateSimilarity(query, word) >= 0.75 {
				score += 10
				break
			}
		}
	}

	if strings.Contains(strings.ToLower(client.Email), query) {
		score += 15
	}
	if strings.Contains(normalizeDigits(client.Document), normalizeDigits(query)) && normalizeDigits(query) != "" {
		score += 25
	}
	if strings.Contains(normalizeDigits(client.Phone), normalizeDigits(query)) && len(normalizeDigits(query)) >= 4 {
		score += 10
	}
	return score
}

func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type scoredClient struct {
	client models.Client
	score  int
}

// filterAndScoreClients keeps clients matching query, best first then by name
func filterAndScoreClients(query string, clients []models.Client) []models.Client {
	query = normalizeInput(query)
	if query == "" {
		return clients
	}

	var scored []scoredClient
	for _, c := range clients {
		if s := scoreClient(query, c); s > 0 {
			scored = append(scored, scoredClient{client: c, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]models.Client, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.client)
	}
	return out
}
