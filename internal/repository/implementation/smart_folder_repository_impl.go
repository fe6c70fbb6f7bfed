package implementation

import (
	"context"
	"errors"

	"dms-backend/internal/entity"
	"dms-backend/internal/mapper"
	"dms-backend/internal/model"
	"dms-backend/internal/repository/contract"
	"dms-backend/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmartFolderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SmartFolderMapper
}

func NewSmartFolderRepository(db *gorm.DB) contract.SmartFolderRepository {
	return &SmartFolderRepositoryImpl{
		db:     db,
		mapper: mapper.NewSmartFolderMapper(),
	}
}

func (r *SmartFolderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SmartFolderRepositoryImpl) Create(ctx context.Context, folder *entity.SmartFolder) error {
	m := r.mapper.ToModel(folder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*folder = *r.mapper.ToEntity(m)
	return nil
}

func (r *SmartFolderRepositoryImpl) Update(ctx context.Context, folder *entity.SmartFolder) error {
	m := r.mapper.ToModel(folder)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*folder = *r.mapper.ToEntity(m)
	return nil
}

func (r *SmartFolderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SmartFolder{}, id).Error
}

func (r *SmartFolderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SmartFolder, error) {
	var m model.SmartFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SmartFolderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SmartFolder, error) {
	var models []*model.SmartFolder
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
