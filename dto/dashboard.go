package dto

import "time"

type DashboardSummary struct {
	TotalClients         int64            `json:"totalClients"`
	TotalRooms           int64            `json:"totalRooms"`
	ActiveRooms          int64            `json:"activeRooms"`
	OccupiedRooms        int64            `json:"occupiedRooms"`
	ReservationsByStatus map[string]int64 `json:"reservationsByStatus"`
	ArrivalsToday        int64            `json:"arrivalsToday"`
	DeparturesToday      int64            `json:"departuresToday"`
	GeneratedAt          time.Time        `json:"generatedAt"`
}
