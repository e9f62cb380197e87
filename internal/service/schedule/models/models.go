package models

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание/обновление конфигурации расписания
// EmployeeID = nil означает общую конфигурацию организации
type UpsertConfigRequest struct {
	EmployeeID              *int64 `json:"employeeId,omitempty"`
	WorkdayStart            string `json:"workdayStart"` // "09:00"
	WorkdayEnd              string `json:"workdayEnd"`   // "18:00"
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		EmployeeID:              r.EmployeeID,
		WorkdayStart:            types.TimeString(r.WorkdayStart),
		WorkdayEnd:              types.TimeString(r.WorkdayEnd),
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	ID                      int64     `json:"id,omitempty"` // 0 для дефолтной конфигурации
	EmployeeID              *int64    `json:"employeeId,omitempty"`
	WorkdayStart            string    `json:"workdayStart"`
	WorkdayEnd              string    `json:"workdayEnd"`
	SlotGranularityMinutes  int       `json:"slotGranularityMinutes"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	IsDefault               bool      `json:"isDefault"` // true, если в хранилище нет подходящей строки
	CreatedAt               time.Time `json:"createdAt,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      c.ID,
		EmployeeID:              c.EmployeeID,
		WorkdayStart:            c.WorkdayStart.String(),
		WorkdayEnd:              c.WorkdayEnd.String(),
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		IsDefault:               c.ID == 0,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}
