package membership

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
)

// allowedTransitions lists the manual status changes. Completed is reached
// only by consuming the last meal, and cancelled is terminal.
var allowedTransitions = map[Status][]Status{
	StatusActive: {StatusHold, StatusCancelled},
	StatusHold:   {StatusActive, StatusCancelled},
}

// CanTransition reports whether a manual change from -> to is allowed.
func CanTransition(from, to Status) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NewMembership builds a fresh active ledger from a creation request and
// records the "created" history entry.
func NewMembership(req CreateMembershipRequest, id string, now time.Time) (Membership, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return Membership{}, apperrors.Validation("userId is required")
	}
	if req.TotalMeals < 1 {
		return Membership{}, apperrors.Validation("totalMeals must be at least 1")
	}
	if len(req.Weeks) == 0 {
		return Membership{}, apperrors.Validation("at least one week is required")
	}

	weeks := make([]WeekPlan, 0, len(req.Weeks))
	seenWeeks := make(map[int]bool, len(req.Weeks))
	for _, w := range req.Weeks {
		if w.Week < 1 {
			return Membership{}, apperrors.Validation("week must be a positive number")
		}
		if seenWeeks[w.Week] {
			return Membership{}, apperrors.Validation(fmt.Sprintf("week %d is listed more than once", w.Week))
		}
		seenWeeks[w.Week] = true

		if len(w.Days) == 0 {
			return Membership{}, apperrors.Validation(fmt.Sprintf("week %d has no days", w.Week))
		}
		days := make([]DayPlan, 0, len(w.Days))
		seenDays := make(map[Weekday]bool, len(w.Days))
		for _, d := range w.Days {
			if !d.Day.Valid() {
				return Membership{}, apperrors.Validation(fmt.Sprintf("week %d: invalid day %q", w.Week, d.Day))
			}
			if seenDays[d.Day] {
				return Membership{}, apperrors.Validation(fmt.Sprintf("week %d: %s is listed more than once", w.Week, d.Day))
			}
			seenDays[d.Day] = true

			meals := make(map[MealType][]string, len(d.Meals))
			for mealType, items := range d.Meals {
				if !mealType.Valid() {
					return Membership{}, apperrors.Validation(fmt.Sprintf("week %d %s: invalid meal type %q", w.Week, d.Day, mealType))
				}
				meals[mealType] = append([]string{}, items...)
			}
			consumed := make(map[MealType]bool, len(MealTypes))
			for _, mealType := range MealTypes {
				consumed[mealType] = false
			}
			days = append(days, DayPlan{
				Day:           d.Day,
				Meals:         meals,
				ConsumedMeals: consumed,
			})
		}
		weeks = append(weeks, WeekPlan{Week: w.Week, Days: days})
	}

	m := Membership{
		ID:         id,
		UserID:     userID,
		TotalMeals: req.TotalMeals,
		Status:     StatusActive,
		Weeks:      weeks,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.Recompute()
	m.History = []HistoryEntry{{
		Action:         ActionCreated,
		Timestamp:      now,
		MealsChanged:   m.TotalMeals,
		ConsumedMeals:  m.ConsumedMeals,
		RemainingMeals: m.RemainingMeals,
		MealItems:      []MealItem{},
	}}
	return m, nil
}

// ValidatePunch checks the shape of a punch request before any store access.
func ValidatePunch(req PunchRequest) error {
	if req.Week < 1 {
		return apperrors.Validation("week must be a positive number")
	}
	if !req.Day.Valid() {
		return apperrors.Validation(fmt.Sprintf("invalid day %q", req.Day))
	}
	if len(req.MealItems) == 0 {
		return apperrors.Validation("at least one meal item is required")
	}
	for _, item := range req.MealItems {
		if !item.MealType.Valid() {
			return apperrors.Validation(fmt.Sprintf("invalid meal type %q", item.MealType))
		}
		if strings.TrimSpace(item.ItemTitle) == "" {
			return apperrors.Validation("itemTitle is required")
		}
		if item.Quantity < 1 {
			return apperrors.Validation("quantity must be at least 1")
		}
	}
	return nil
}

// ApplyPunch consumes the requested meal types of one day and returns the
// updated ledger. Every precondition is checked before anything changes, so
// on error m is returned to the caller untouched.
func ApplyPunch(m Membership, req PunchRequest, now time.Time) (Membership, error) {
	if err := ValidatePunch(req); err != nil {
		return Membership{}, err
	}
	if err := requireActive(m.Status); err != nil {
		return Membership{}, err
	}

	wi := m.weekIndex(req.Week)
	if wi < 0 {
		return Membership{}, apperrors.New(apperrors.CodeWeekNotFound, fmt.Sprintf("Week %d is not part of this membership.", req.Week))
	}
	di := m.Weeks[wi].dayIndex(req.Day)
	if di < 0 {
		return Membership{}, apperrors.New(apperrors.CodeDayNotFound, fmt.Sprintf("%s is not planned in week %d.", titleCase(string(req.Day)), req.Week))
	}

	day := m.Weeks[wi].Days[di]
	if day.IsConsumed {
		return Membership{}, apperrors.New(apperrors.CodeDayAlreadyConsumed,
			fmt.Sprintf("All meals for %s of week %d have already been consumed.", titleCase(string(req.Day)), req.Week))
	}

	total := 0
	items := make([]MealItem, 0, len(req.MealItems))
	for _, item := range req.MealItems {
		if day.ConsumedMeals[item.MealType] {
			return Membership{}, apperrors.New(apperrors.CodeMealAlreadyConsumed,
				fmt.Sprintf("%s for %s of week %d has already been consumed.", titleCase(string(item.MealType)), titleCase(string(req.Day)), req.Week))
		}
		items = append(items, MealItem{
			Title:    strings.TrimSpace(item.ItemTitle),
			Qty:      item.Quantity,
			MealType: item.MealType,
		})
	}
	for _, item := range items {
		// Compare before adding so a huge quantity cannot wrap the sum.
		if item.Qty > m.RemainingMeals-total {
			return Membership{}, exceedsRemaining(req.MealItems, m.RemainingMeals)
		}
		total += item.Qty
	}

	next := m.clone()
	nextDay := &next.Weeks[wi].Days[di]
	for _, item := range items {
		nextDay.ConsumedMeals[item.MealType] = true
	}
	next.ConsumedMeals += total
	next.Recompute()
	if next.RemainingMeals == 0 {
		next.Status = StatusCompleted
	}
	next.UpdatedAt = now
	next.History = append(next.History, HistoryEntry{
		Action:          ActionConsumed,
		Timestamp:       now,
		MealsChanged:    -total,
		CurrentConsumed: total,
		ConsumedMeals:   next.ConsumedMeals,
		RemainingMeals:  next.RemainingMeals,
		MealItems:       items,
		Week:            req.Week,
		Day:             req.Day,
	})
	return next, nil
}

// ApplyStatusChange performs a manual status transition and records it.
func ApplyStatusChange(m Membership, target Status, now time.Time) (Membership, error) {
	if target == StatusCompleted {
		return Membership{}, apperrors.New(apperrors.CodeStatusCompletedNotAllowed,
			"A membership is completed automatically once all meals are consumed; it cannot be set manually.")
	}
	if !target.Valid() {
		return Membership{}, apperrors.Validation(fmt.Sprintf("status must be one of [active hold cancelled], got %q", target))
	}
	if m.Status == target {
		return Membership{}, apperrors.New(apperrors.CodeMembershipInvalidTransition,
			fmt.Sprintf("This membership is already %s.", target))
	}
	if !CanTransition(m.Status, target) {
		return Membership{}, apperrors.New(apperrors.CodeMembershipInvalidTransition,
			fmt.Sprintf("A %s membership cannot be changed to %s.", m.Status, target))
	}

	next := m.clone()
	next.Status = target
	next.Recompute()
	next.UpdatedAt = now
	next.History = append(next.History, HistoryEntry{
		Action:         ActionStatusChanged,
		Timestamp:      now,
		ConsumedMeals:  next.ConsumedMeals,
		RemainingMeals: next.RemainingMeals,
		MealItems:      []MealItem{},
		FromStatus:     m.Status,
		ToStatus:       target,
	})
	return next, nil
}

// Recompute overwrites every derived field from its source fields.
func (m *Membership) Recompute() {
	m.RemainingMeals = m.TotalMeals - m.ConsumedMeals
	for wi := range m.Weeks {
		week := &m.Weeks[wi]
		week.IsConsumed = len(week.Days) > 0
		for di := range week.Days {
			day := &week.Days[di]
			day.IsConsumed = true
			for _, mealType := range MealTypes {
				if !day.ConsumedMeals[mealType] {
					day.IsConsumed = false
					break
				}
			}
			if !day.IsConsumed {
				week.IsConsumed = false
			}
		}
	}
}

// SortedHistory returns a copy of the history, newest first when desc is set.
func (m *Membership) SortedHistory(desc bool) []HistoryEntry {
	out := make([]HistoryEntry, len(m.History))
	if !desc {
		copy(out, m.History)
		return out
	}
	for i, entry := range m.History {
		out[len(m.History)-1-i] = entry
	}
	return out
}

func requireActive(status Status) error {
	switch status {
	case StatusActive:
		return nil
	case StatusHold:
		return apperrors.New(apperrors.CodeMembershipOnHold,
			"This membership is on hold. Resume it before punching meals.")
	case StatusCancelled:
		return apperrors.New(apperrors.CodeMembershipCancelled,
			"This membership has been cancelled. Meals can no longer be punched.")
	case StatusCompleted:
		return apperrors.New(apperrors.CodeMembershipCompleted,
			"This membership is completed. All meals have already been consumed.")
	default:
		return apperrors.Internal(fmt.Sprintf("membership has unknown status %q", status), nil)
	}
}

func (m *Membership) weekIndex(week int) int {
	for i := range m.Weeks {
		if m.Weeks[i].Week == week {
			return i
		}
	}
	return -1
}

func (w *WeekPlan) dayIndex(day Weekday) int {
	for i := range w.Days {
		if w.Days[i].Day == day {
			return i
		}
	}
	return -1
}

// clone deep-copies the ledger so the original stays untouched.
func (m Membership) clone() Membership {
	out := m
	out.Weeks = make([]WeekPlan, len(m.Weeks))
	for wi, week := range m.Weeks {
		days := make([]DayPlan, len(week.Days))
		for di, day := range week.Days {
			meals := make(map[MealType][]string, len(day.Meals))
			for k, v := range day.Meals {
				meals[k] = append([]string{}, v...)
			}
			consumed := make(map[MealType]bool, len(day.ConsumedMeals))
			for k, v := range day.ConsumedMeals {
				consumed[k] = v
			}
			day.Meals = meals
			day.ConsumedMeals = consumed
			days[di] = day
		}
		week.Days = days
		out.Weeks[wi] = week
	}
	out.History = append(make([]HistoryEntry, 0, len(m.History)+1), m.History...)
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func exceedsRemaining(items []PunchItem, remaining int) error {
	msg := fmt.Sprintf("Requested %d meals but only %d remain on this membership.", requestedMeals(items), remaining)
	return apperrors.New(apperrors.CodeQuantityExceedsRemaining, msg)
}

// requestedMeals sums quantities for messages, saturating at math.MaxInt.
func requestedMeals(items []PunchItem) int {
	total := 0
	for _, item := range items {
		if item.Quantity > math.MaxInt-total {
			return math.MaxInt
		}
		total += item.Quantity
	}
	return total
}
