package services

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-manager/constants"
	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
	"hotel-manager/validator"
)

type ClientService struct {
	db     *gorm.DB
	rdb    *redis.Client
	engine *booking.Engine
	logger logger.Logger
}

type ClientServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Engine *booking.Engine
	Logger logger.Logger
}

func NewClientService(opts ClientServiceOptions) *ClientService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &ClientService{
		db:     opts.DB,
		rdb:    opts.Redis,
		engine: opts.Engine,
		logger: opts.Logger,
	}
}

// List returns clients ordered by name. With a query, results are ranked by fuzzy match instead.
func (s *ClientService) List(ctx context.Context, filter dto.ClientFilter) ([]models.Client, int, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("name").Find(&clients).Error; err != nil {
		return nil, 0, apperrors.DBError("failed to list clients", err)
	}

	if strings.TrimSpace(filter.Query) != "" {
		clients = filterAndScoreClients(filter.Query, clients)
	}

	total := len(clients)
	return paginate(clients, filter.Page, filter.Limit), total, nil
}

// Get loads a client with its reservations, newest stay first
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).
		Preload("Reservations", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in DESC")
		}).
		Preload("Reservations.Room").
		First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("client", id)
	}
	if err != nil {
		return nil, apperrors.DBError("failed to load client", err)
	}
	return &client, nil
}

func (s *ClientService) Create(ctx context.Context, req dto.ClientRequest) (*models.Client, error) {
	client := clientFromRequest(req)
	if err := validator.ValidateClient(&client); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, &client, 0); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, mapWriteError("client", err)
	}
	s.invalidate(ctx)
	s.logger.Info("client %d created", client.ID)
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, req dto.ClientRequest) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("client", id)
		}
		return nil, apperrors.DBError("failed to load client", err)
	}

	next := clientFromRequest(req)
	if err := validator.ValidateClient(&next); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, &next, id); err != nil {
		return nil, err
	}

	client.Name = next.Name
	client.Email = next.Email
	client.Phone = next.Phone
	client.Document = next.Document
	client.Address = next.Address
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&client).Error; err != nil {
		return nil, mapWriteError("client", err)
	}
	s.logger.Info("client %d updated", client.ID)
	return &client, nil
}

// Delete is refused while the client holds an active reservation
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	if err := s.engine.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops the dashboard summary, which counts clients
func (s *ClientService) invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, s.rdb, constants.CacheKeyDashboardSummary); err != nil {
		s.logger.Error("cache invalidation failed: %v", err)
	}
}

// ensureUnique rejects a second client with the same email or document; excludeID skips the client being edited
func (s *ClientService) ensureUnique(ctx context.Context, client *models.Client, excludeID uint) error {
	query := s.db.WithContext(ctx).
		Where("(LOWER(email) = ? OR document = ?)", strings.ToLower(client.Email), client.Document)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var existing models.Client
	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.DBError("failed to check client uniqueness", err)
	}
	return apperrors.Conflict("a client with this email or document already exists", apperrors.ErrDuplicate)
}

func clientFromRequest(req dto.ClientRequest) models.Client {
	return models.Client{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Document: strings.TrimSpace(req.Document),
		Address:  strings.TrimSpace(req.Address),
	}
}
