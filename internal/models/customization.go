package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OptionChoice is a single selectable value inside a customization option.
// PriceAdjustment may be negative (e.g. a "small" size discount).
type OptionChoice struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	PriceAdjustment float64 `bson:"priceAdjustment" json:"priceAdjustment"`
	IsDefault       bool    `bson:"isDefault" json:"isDefault,omitempty"`
}

// CustomizationOption is either a variant (single-choice, MultiSelect=false)
// or a modifier (multi-choice, MultiSelect=true). Min/MaxSelections only carry
// meaning for modifiers.
type CustomizationOption struct {
	ID            string             `bson:"id" json:"id"`
	ProductID     primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Required      bool               `bson:"required" json:"required"`
	MultiSelect   bool               `bson:"multiSelect" json:"multiSelect"`
	MinSelections int                `bson:"minSelections,omitempty" json:"minSelections,omitempty"`
	MaxSelections int                `bson:"maxSelections,omitempty" json:"maxSelections,omitempty"`
	Choices       []OptionChoice     `bson:"choices" json:"choices"`
}

// SelectionValue carries the chosen choice ids for one option. Which field is
// meaningful is decided by the option's declared MultiSelect flag, never by
// inspecting which field happens to be set.
type SelectionValue struct {
	ChoiceID  string   `bson:"choiceId,omitempty" json:"choiceId,omitempty"`
	ChoiceIDs []string `bson:"choiceIds,omitempty" json:"choiceIds,omitempty"`
}

// ProductCustomization is the buffered selection state for one product. It is
// discarded on cancel and snapshotted into a cart line on confirm.
type ProductCustomization struct {
	ProductID           string                    `bson:"productId" json:"productId"`
	Selections          map[string]SelectionValue `bson:"selections" json:"selections"`
	SpecialInstructions string                    `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
}

// NewProductCustomization pre-fills selections with each option's defaults:
// variants take the flagged default (or the first choice when required),
// modifiers take every flagged default, or the first MinSelections choices
// when required with a minimum and nothing flagged.
func NewProductCustomization(productID string, options []CustomizationOption) ProductCustomization {
	selections := make(map[string]SelectionValue, len(options))

	for _, option := range options {
		if !option.MultiSelect {
			picked := ""
			for _, choice := range option.Choices {
				if choice.IsDefault {
					picked = choice.ID
					break
				}
			}
			if picked == "" && option.Required && len(option.Choices) > 0 {
				picked = option.Choices[0].ID
			}
			if picked != "" {
				selections[option.ID] = SelectionValue{ChoiceID: picked}
			}
			continue
		}

		ids := make([]string, 0, len(option.Choices))
		for _, choice := range option.Choices {
			if choice.IsDefault {
				ids = append(ids, choice.ID)
			}
		}
		if len(ids) == 0 && option.Required && option.MinSelections > 0 {
			for i := 0; i < option.MinSelections && i < len(option.Choices); i++ {
				ids = append(ids, option.Choices[i].ID)
			}
		}
		selections[option.ID] = SelectionValue{ChoiceIDs: ids}
	}

	return ProductCustomization{ProductID: productID, Selections: selections}
}

// SetSingle replaces the choice for a variant option.
func (pc *ProductCustomization) SetSingle(optionID, choiceID string) {
	if pc.Selections == nil {
		pc.Selections = make(map[string]SelectionValue)
	}
	pc.Selections[optionID] = SelectionValue{ChoiceID: choiceID}
}

// ToggleMulti adds or removes a choice for a modifier option.
func (pc *ProductCustomization) ToggleMulti(optionID, choiceID string, selected bool) {
	if pc.Selections == nil {
		pc.Selections = make(map[string]SelectionValue)
	}

	current := pc.Selections[optionID].ChoiceIDs
	next := make([]string, 0, len(current)+1)
	for _, id := range current {
		if id != choiceID {
			next = append(next, id)
		}
	}
	if selected {
		next = append(next, choiceID)
	}
	pc.Selections[optionID] = SelectionValue{ChoiceIDs: next}
}

// ValidSelections reports whether every required option is satisfied: a
// variant needs a choice, a modifier needs a selection count within its
// min/max bounds.
func (pc ProductCustomization) ValidSelections(options []CustomizationOption) bool {
	for _, option := range options {
		if !option.Required {
			continue
		}

		selection := pc.Selections[option.ID]
		if !option.MultiSelect {
			if selection.ChoiceID == "" {
				return false
			}
			continue
		}

		count := len(selection.ChoiceIDs)
		if count < option.MinSelections {
			return false
		}
		if option.MaxSelections > 0 && count > option.MaxSelections {
			return false
		}
	}
	return true
}
