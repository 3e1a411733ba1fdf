package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

// Configuration keys for the analysis tunables.
const (
	KeyExpectedTaxRate     = "rules.expected_tax_rate"
	KeyBudgetCeiling       = "rules.budget_ceiling"
	KeyLargeInvoiceCeiling = "rules.large_invoice_ceiling"
	KeyUrgencyHorizonDays  = "priority.urgency_horizon_days"
	KeyHighValueThreshold  = "priority.high_value_threshold"
	KeyDiscountWindowDays  = "recommend.discount_window_days"
	KeyUrgentWindowDays    = "recommend.urgent_window_days"
	KeySummaryMaxChars     = "summary.max_chars"
	KeyConversationTurns   = "conversation.max_turns"
	KeyAssistantTimeout    = "llm.timeout"
)

// Tunables holds every threshold the analysis engine reads.
type Tunables struct {
	ExpectedTaxRate      float64       `validate:"gte=0,lte=100"`
	BudgetCeiling        float64       `validate:"gt=0"`
	LargeInvoiceCeiling  float64       `validate:"gt=0"`
	HighValueThreshold   float64       `validate:"gte=0"`
	UrgencyHorizonDays   int           `validate:"gte=0"`
	DiscountWindowDays   int           `validate:"gte=0"`
	UrgentWindowDays     int           `validate:"gte=0"`
	SummaryMaxChars      int           `validate:"gte=64"`
	MaxConversationTurns int           `validate:"gte=2"`
	AssistantTimeout     time.Duration `validate:"gt=0"`
}

// DefaultTunables returns the stock thresholds.
func DefaultTunables() Tunables {
	return Tunables{
		ExpectedTaxRate:      20,
		BudgetCeiling:        5000,
		LargeInvoiceCeiling:  10000,
		HighValueThreshold:   3000,
		UrgencyHorizonDays:   10,
		DiscountWindowDays:   10,
		UrgentWindowDays:     5,
		SummaryMaxChars:      4000,
		MaxConversationTurns: 20,
		AssistantTimeout:     30 * time.Second,
	}
}

// SetDefaults registers the stock thresholds with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultTunables()
	v.SetDefault(KeyExpectedTaxRate, d.ExpectedTaxRate)
	v.SetDefault(KeyBudgetCeiling, d.BudgetCeiling)
	v.SetDefault(KeyLargeInvoiceCeiling, d.LargeInvoiceCeiling)
	v.SetDefault(KeyHighValueThreshold, d.HighValueThreshold)
	v.SetDefault(KeyUrgencyHorizonDays, d.UrgencyHorizonDays)
	v.SetDefault(KeyDiscountWindowDays, d.DiscountWindowDays)
	v.SetDefault(KeyUrgentWindowDays, d.UrgentWindowDays)
	v.SetDefault(KeySummaryMaxChars, d.SummaryMaxChars)
	v.SetDefault(KeyConversationTurns, d.MaxConversationTurns)
	v.SetDefault(KeyAssistantTimeout, d.AssistantTimeout)
}

// LoadTunables reads and validates the thresholds from v.
func LoadTunables(v *viper.Viper) (Tunables, error) {
	SetDefaults(v)

	t := Tunables{
		ExpectedTaxRate:      v.GetFloat64(KeyExpectedTaxRate),
		BudgetCeiling:        v.GetFloat64(KeyBudgetCeiling),
		LargeInvoiceCeiling:  v.GetFloat64(KeyLargeInvoiceCeiling),
		HighValueThreshold:   v.GetFloat64(KeyHighValueThreshold),
		UrgencyHorizonDays:   v.GetInt(KeyUrgencyHorizonDays),
		DiscountWindowDays:   v.GetInt(KeyDiscountWindowDays),
		UrgentWindowDays:     v.GetInt(KeyUrgentWindowDays),
		SummaryMaxChars:      v.GetInt(KeySummaryMaxChars),
		MaxConversationTurns: v.GetInt(KeyConversationTurns),
		AssistantTimeout:     v.GetDuration(KeyAssistantTimeout),
	}

	if err := t.Validate(); err != nil {
		return Tunables{}, err
	}
	return t, nil
}

var validate = validator.New()

// Validate checks every threshold and reports the first offending field as a
// ConfigurationError.
func (t Tunables) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return common.NewConfigurationError(fe.Field(),
			fmt.Errorf("%w: must satisfy %s=%s (got %v)", common.ErrInvalidConfig, fe.Tag(), fe.Param(), fe.Value()))
	}
	return common.NewConfigurationError("", fmt.Errorf("%w: %v", common.ErrInvalidConfig, err))
}
