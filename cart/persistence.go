package cart

import (
	"encoding/json"
	"time"

	"github.com/innomatricstech/Sadhana-Cart-ecom/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageKey returns the fixed storage key a user's cart is persisted under.
func StorageKey(userID string) string {
	return "shoppingCart:" + userID
}

// GormPersister stores cart records as single rows keyed by storage key.
// Concurrent writers are not coordinated: last write wins, matching the
// single-shared-key model.
type GormPersister struct {
	DB *gorm.DB
}

func (p *GormPersister) Save(key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	row := models.CartRecord{
		StorageKey: key,
		Data:       string(data),
		UpdatedAt:  time.Now(),
	}
	return p.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (p *GormPersister) Load(key string) (Record, bool, error) {
	var row models.CartRecord
	if err := p.DB.First(&row, "storage_key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		// A corrupt payload falls back to an empty cart.
		return Record{}, false, nil
	}
	return rec, true, nil
}
