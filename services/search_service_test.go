package services

import (
	"testing"

	"roomstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []models.RoomType {
	return []models.RoomType{
		{ID: 1, Name: "Phòng Deluxe Hướng Biển"},
		{ID: 2, Name: "Phòng Standard"},
		{ID: 3, Name: "Suite Gia Đình"},
	}
}

func TestSearchRoomTypes_IgnoresDiacritics(t *testing.T) {
	results := SearchRoomTypes(catalog(), "phong deluxe")

	require.NotEmpty(t, results)
	assert.Equal(t, uint(1), results[0].ID)
}

func TestSearchRoomTypes_Typo(t *testing.T) {
	results := SearchRoomTypes(catalog(), "delux")

	require.NotEmpty(t, results)
	assert.Equal(t, uint(1), results[0].ID)
}

func TestSearchRoomTypes_EmptyQueryReturnsAll(t *testing.T) {
	results := SearchRoomTypes(catalog(), "   ")

	assert.Len(t, results, 3)
}
