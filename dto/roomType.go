package dto

import (
	"encoding/json"
	"time"
)

// CreateRoomTypeRequest là DTO cho request tạo loại phòng
type CreateRoomTypeRequest struct {
	Name            string `json:"name" binding:"required" validate:"required"`
	Description     string `json:"description"`
	NightlyRate     int    `json:"nightlyRate" binding:"required" validate:"gte=0"`
	CapacityPerUnit int    `json:"capacityPerUnit" binding:"required" validate:"gte=1"`
	TotalUnits      int    `json:"totalUnits" binding:"required" validate:"gte=1"`
	Avatar          string `json:"avatar"`
	NumBed          int    `json:"numBed"`
	NumTolet        int    `json:"numTolet"`
	Acreage         int    `json:"acreage"`
}

// UpdateRoomTypeRequest là DTO cho request cập nhật loại phòng
type UpdateRoomTypeRequest struct {
	ID              uint   `json:"id" binding:"required"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	NightlyRate     int    `json:"nightlyRate"`
	CapacityPerUnit int    `json:"capacityPerUnit"`
	TotalUnits      int    `json:"totalUnits"`
	Avatar          string `json:"avatar"`
	NumBed          int    `json:"numBed"`
	NumTolet        int    `json:"numTolet"`
	Acreage         int    `json:"acreage"`
}

// BookableRequest là DTO cho request bật/tắt nhận đặt phòng
type BookableRequest struct {
	ID         uint `json:"id" binding:"required"`
	IsBookable bool `json:"isBookable"`
}

// RoomTypeResponse là DTO cho response loại phòng
type RoomTypeResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	NightlyRate     int             `json:"nightlyRate"`
	CapacityPerUnit int             `json:"capacityPerUnit"`
	TotalUnits      int             `json:"totalUnits"`
	IsBookable      bool            `json:"isBookable"`
	Avatar          string          `json:"avatar"`
	Img             json.RawMessage `json:"img"`
	NumBed          int             `json:"numBed"`
	NumTolet        int             `json:"numTolet"`
	Acreage         int             `json:"acreage"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CalendarDayResponse một ngày trong lịch phòng trống
type CalendarDayResponse struct {
	Date      string `json:"date"`
	Committed int    `json:"committed"`
	Available int    `json:"available"`
}
