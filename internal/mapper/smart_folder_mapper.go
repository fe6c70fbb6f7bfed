package mapper

import (
	"dms-backend/internal/entity"
	"dms-backend/internal/model"

	"gorm.io/datatypes"
)

type SmartFolderMapper struct{}

func NewSmartFolderMapper() *SmartFolderMapper {
	return &SmartFolderMapper{}
}

func (m *SmartFolderMapper) ToEntity(f *model.SmartFolder) *entity.SmartFolder {
	if f == nil {
		return nil
	}

	return &entity.SmartFolder{
		Id:          f.Id,
		Name:        f.Name,
		Description: f.Description,
		Definition:  string(f.Definition),
		Scope:       entity.SmartFolderScope(f.Scope),
		OwnerId:     f.OwnerId,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *SmartFolderMapper) ToModel(f *entity.SmartFolder) *model.SmartFolder {
	if f == nil {
		return nil
	}

	definition := f.Definition
	if definition == "" {
		definition = "{}"
	}

	return &model.SmartFolder{
		Id:          f.Id,
		Name:        f.Name,
		Description: f.Description,
		Definition:  datatypes.JSON(definition),
		Scope:       string(f.Scope),
		OwnerId:     f.OwnerId,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *SmartFolderMapper) ToEntities(folders []*model.SmartFolder) []*entity.SmartFolder {
	entities := make([]*entity.SmartFolder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
