package repository

import (
	"context"
	"errors"
	"time"

	"uniket/internal/domain/model"
	repo "uniket/internal/repository"

	"gorm.io/gorm"
)

type ticketGormRepository struct {
	db *gorm.DB
}

func NewTicketGormRepository(db *gorm.DB) repo.TicketRepository {
	return &ticketGormRepository{db: db}
}

func (r *ticketGormRepository) FindByID(ctx context.Context, ticketID int64) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", ticketID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ticket{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

// QRコードは完全一致で照合する（復号しない）
func (r *ticketGormRepository) FindByQRCode(ctx context.Context, qrCode string) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ticket{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

func (r *ticketGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Ticket, error) {
	var items []model.Ticket
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Ticket{}, err
	}
	return items, nil
}

func (r *ticketGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Ticket, error) {
	var items []model.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Ticket{}, err
	}
	return items, nil
}

func (r *ticketGormRepository) CreateBatch(ctx context.Context, tickets []model.Ticket) ([]model.Ticket, error) {
	if len(tickets) == 0 {
		return []model.Ticket{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketGormRepository) UpdateStatus(ctx context.Context, ticketID int64, status model.TicketStatus, usedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if usedAt != nil {
		updates["used_at"] = *usedAt
	}

	res := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ?", ticketID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
