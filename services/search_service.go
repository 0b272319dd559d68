package services

import (
	"sort"
	"strings"

	"roomstay/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// normalizeInput chuẩn hóa query: bỏ dấu, về chữ thường
func normalizeInput(input string) string {
	return strings.TrimSpace(strings.ToLower(unidecode.Unidecode(input)))
}

// createMatcher tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// SearchRoomTypes tìm loại phòng theo tên gần đúng, xếp theo độ tương đồng giảm dần
func SearchRoomTypes(roomTypes []models.RoomType, query string) []models.RoomType {
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" {
		return roomTypes
	}

	names := make([]string, 0, len(roomTypes))
	for _, rt := range roomTypes {
		names = append(names, normalizeInput(rt.Name))
	}
	matcher := createMatcher(names)
	closest := matcher.Closest(normalizedQuery)

	type scored struct {
		roomType models.RoomType
		score    float64
	}

	var results []scored
	for _, rt := range roomTypes {
		name := normalizeInput(rt.Name)
		score := calculateSimilarity(normalizedQuery, name)
		if strings.Contains(name, normalizedQuery) || name == closest {
			score += 1.0
		}
		if score >= 0.3 {
			results = append(results, scored{roomType: rt, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	matched := make([]models.RoomType, 0, len(results))
	for _, r := range results {
		matched = append(matched, r.roomType)
	}
	return matched
}
