package recipe

import (
	"QuarterMaster/domain"
	"QuarterMaster/entities"
	"strings"

	"github.com/google/uuid"
)

type stockEntry struct {
	ID       uuid.UUID
	Quantity float64
}

// StockIndex maps lowercase ingredient names to their stored quantity and id.
// Names are matched case-insensitively and never trimmed; two stock records
// sharing a case-insensitive name collapse to the last one scanned.
type StockIndex map[string]stockEntry

func BuildStockIndex(stock []*entities.Ingredient) StockIndex {
	index := make(StockIndex, len(stock))
	for _, item := range stock {
		if item.Name == "" {
			continue
		}
		index[strings.ToLower(item.Name)] = stockEntry{
			ID:       item.ID,
			Quantity: item.Quantity,
		}
	}
	return index
}

// CanMake reports whether every ingredient ref is covered by current stock.
// A ref without a usable name disqualifies the whole recipe. A name absent
// from the index counts as quantity 0. Pure and safe to call repeatedly.
//
// With sumDuplicates false, refs sharing a name are each checked against the
// same snapshot quantity, so their combined demand may exceed stock. That is
// the observed behavior this check preserves; sumDuplicates true checks the
// summed demand per name instead.
func (idx StockIndex) CanMake(refs []domain.RecipeIngredientRef, sumDuplicates bool) bool {
	if sumDuplicates {
		demand := make(map[string]float64, len(refs))
		for _, ref := range refs {
			if ref.Name == "" {
				return false
			}
			demand[strings.ToLower(ref.Name)] += ref.Quantity
		}
		for name, required := range demand {
			if idx[name].Quantity < required {
				return false
			}
		}
		return true
	}

	for _, ref := range refs {
		if ref.Name == "" {
			return false
		}
		if idx[strings.ToLower(ref.Name)].Quantity < ref.Quantity {
			return false
		}
	}
	return true
}

// StageDecrements resolves every ref against the index and returns the new
// quantity per ingredient id. Refs without a usable name consume no stock.
// On the first shortfall it returns an InsufficientStockError naming the
// ingredient and stages nothing; the caller must not write anything then.
func (idx StockIndex) StageDecrements(refs []domain.RecipeIngredientRef, sumDuplicates bool) (map[uuid.UUID]float64, error) {
	updates := make(map[uuid.UUID]float64)

	if sumDuplicates {
		demand := make(map[string]float64, len(refs))
		for _, ref := range refs {
			if ref.Name == "" {
				continue
			}
			demand[strings.ToLower(ref.Name)] += ref.Quantity
		}

		for _, ref := range refs {
			if ref.Name == "" {
				continue
			}
			key := strings.ToLower(ref.Name)
			entry, ok := idx[key]
			required := demand[key]
			if !ok || entry.Quantity < required {
				return nil, &domain.InsufficientStockError{
					Name:      ref.Name,
					Required:  required,
					Available: entry.Quantity,
				}
			}
			updates[entry.ID] = entry.Quantity - required
		}
		return updates, nil
	}

	for _, ref := range refs {
		if ref.Name == "" {
			continue
		}
		entry, ok := idx[strings.ToLower(ref.Name)]
		if !ok || entry.Quantity < ref.Quantity {
			return nil, &domain.InsufficientStockError{
				Name:      ref.Name,
				Required:  ref.Quantity,
				Available: entry.Quantity,
			}
		}
		// Duplicate refs overwrite the same key from the same snapshot value,
		// matching the independent-check policy above.
		updates[entry.ID] = entry.Quantity - ref.Quantity
	}
	return updates, nil
}
