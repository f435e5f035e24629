package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Tip identifiers the client may dismiss.
const (
	TipGutMindBalanceInfo = "gut_mind_balance_info_seen"
)

type OnboardingAnswers struct {
	UserGoal        string `json:"userGoal,omitempty" example:"Improve digestion"`
	UserFeeling     string `json:"userFeeling,omitempty" example:"Bloated"`
	CommitmentLevel string `json:"commitmentLevel,omitempty" example:"Daily"`
}

// UserPreferences holds per-user client state: onboarding progress and
// dismissed tooltips.
type UserPreferences struct {
	WhopUserID          string                                `gorm:"column:whop_user_id;primaryKey" json:"whop_user_id"`
	OnboardingCompleted bool                                  `gorm:"not null;default:false" json:"onboarding_completed"`
	OnboardingAnswers   datatypes.JSONType[OnboardingAnswers] `gorm:"type:jsonb" json:"onboarding_answers" swaggertype:"object"`
	DismissedTips       pq.StringArray                        `gorm:"type:text[]" json:"dismissed_tips" swaggertype:"array,string"`
	CreatedAt           time.Time                             `json:"created_at"`
	UpdatedAt           time.Time                             `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences is what a user without a stored row sees.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		WhopUserID:        userID,
		OnboardingAnswers: datatypes.NewJSONType(OnboardingAnswers{}),
		DismissedTips:     pq.StringArray{},
	}
}

func (p *UserPreferences) HasDismissed(tip string) bool {
	for _, t := range p.DismissedTips {
		if t == tip {
			return true
		}
	}
	return false
}
