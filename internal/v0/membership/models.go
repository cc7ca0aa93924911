package membership

import "time"

// Status is the lifecycle state of a membership
type Status string

const (
	StatusActive    Status = "active"
	StatusHold      Status = "hold"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusHold, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// MealType is one of the four daily meal slots
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snacks    MealType = "snacks"
	Dinner    MealType = "dinner"
)

// MealTypes lists the meal slots in serving order
var MealTypes = []MealType{Breakfast, Lunch, Snacks, Dinner}

// Valid reports whether m is a known meal type
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Snacks, Dinner:
		return true
	}
	return false
}

// Weekday names a day inside a week plan
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days in calendar order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is a known weekday
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Action is the kind of change a history entry records
type Action string

const (
	ActionCreated       Action = "created"
	ActionConsumed      Action = "consumed"
	ActionStatusChanged Action = "status-changed"
)

// Membership is the meal ledger document of one customer plan
type Membership struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	TotalMeals     int            `json:"totalMeals"`
	ConsumedMeals  int            `json:"consumedMeals"`
	RemainingMeals int            `json:"remainingMeals"`
	Status         Status         `json:"status"`
	Weeks          []WeekPlan     `json:"weeks"`
	History        []HistoryEntry `json:"history"`
	Version        int64          `json:"version"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// WeekPlan groups the day plans of one week
type WeekPlan struct {
	Week       int       `json:"week"`
	Days       []DayPlan `json:"days"`
	IsConsumed bool      `json:"isConsumed"`
}

// DayPlan holds the planned items and consumption flags of one day
type DayPlan struct {
	Day           Weekday               `json:"day"`
	Meals         map[MealType][]string `json:"meals"`
	ConsumedMeals map[MealType]bool     `json:"consumedMeals"`
	IsConsumed    bool                  `json:"isConsumed"`
}

// MealItem is one consumed item captured in a history entry
type MealItem struct {
	Title    string   `json:"title"`
	Qty      int      `json:"qty"`
	MealType MealType `json:"mealType"`
}

// HistoryEntry is one immutable audit record of the ledger
type HistoryEntry struct {
	Action          Action     `json:"action"`
	Timestamp       time.Time  `json:"timestamp"`
	MealsChanged    int        `json:"mealsChanged"`
	CurrentConsumed int        `json:"currentConsumed"`
	ConsumedMeals   int        `json:"consumedMeals"`
	RemainingMeals  int        `json:"remainingMeals"`
	MealItems       []MealItem `json:"mealItems"`
	Week            int        `json:"week,omitempty"`
	Day             Weekday    `json:"day,omitempty"`
	FromStatus      Status     `json:"fromStatus,omitempty"`
	ToStatus        Status     `json:"toStatus,omitempty"`
}

// PunchItem requests consumption of one item of a meal type
type PunchItem struct {
	MealType  MealType `json:"mealType" binding:"required,mealtype"`
	ItemTitle string   `json:"itemTitle" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
}

// PunchRequest represents the request body for punching meals
type PunchRequest struct {
	Week      int         `json:"week" binding:"required,min=1"`
	Day       Weekday     `json:"day" binding:"required,weekday"`
	MealItems []PunchItem `json:"mealItems" binding:"required,min=1,dive"`
}

// StatusChangeRequest represents the request body for changing a membership status
type StatusChangeRequest struct {
	Status Status `json:"status" binding:"required"`
}

// DayPlanInput describes one planned day when creating a membership
type DayPlanInput struct {
	Day   Weekday               `json:"day" binding:"required,weekday"`
	Meals map[MealType][]string `json:"meals"`
}

// WeekPlanInput describes one planned week when creating a membership
type WeekPlanInput struct {
	Week int            `json:"week" binding:"required,min=1"`
	Days []DayPlanInput `json:"days" binding:"required,min=1,max=7,dive"`
}

// CreateMembershipRequest represents the request body for creating a membership
type CreateMembershipRequest struct {
	UserID     string          `json:"userId" binding:"required"`
	TotalMeals int             `json:"totalMeals" binding:"required,min=1"`
	Weeks      []WeekPlanInput `json:"weeks" binding:"required,min=1,dive"`
}


/*
This project is the backend API for the Total Health meal-plan platform. Memberships, meal punching and table bookings for the ordering site and the admin dashboard.
API Copyright (C) 2025 Total Health
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
