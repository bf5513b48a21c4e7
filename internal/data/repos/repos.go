package repos

import (
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos/catalog"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type UserRepo = catalog.UserRepo
type SubjectRepo = catalog.SubjectRepo
type GradeRepo = catalog.GradeRepo
type TagRepo = catalog.TagRepo

type ResourceRepo = catalog.ResourceRepo
type ResourceTagRepo = catalog.ResourceTagRepo
type ResourceVoteRepo = catalog.ResourceVoteRepo
type UserResourceRepo = catalog.UserResourceRepo

type LearningModuleRepo = catalog.LearningModuleRepo
type LearningModuleTagRepo = catalog.LearningModuleTagRepo
type LearningModuleVoteRepo = catalog.LearningModuleVoteRepo
type UserLearningModuleRepo = catalog.UserLearningModuleRepo

type ResourceModuleMappingRepo = catalog.ResourceModuleMappingRepo
type UserSettingsRepo = catalog.UserSettingsRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return catalog.NewUserRepo(db, baseLog)
}
func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return catalog.NewSubjectRepo(db, baseLog)
}
func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return catalog.NewGradeRepo(db, baseLog)
}
func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return catalog.NewTagRepo(db, baseLog)
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return catalog.NewResourceRepo(db, baseLog)
}
func NewResourceTagRepo(db *gorm.DB, baseLog *logger.Logger) ResourceTagRepo {
	return catalog.NewResourceTagRepo(db, baseLog)
}
func NewResourceVoteRepo(db *gorm.DB, baseLog *logger.Logger) ResourceVoteRepo {
	return catalog.NewResourceVoteRepo(db, baseLog)
}
func NewUserResourceRepo(db *gorm.DB, baseLog *logger.Logger) UserResourceRepo {
	return catalog.NewUserResourceRepo(db, baseLog)
}

func NewLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleRepo {
	return catalog.NewLearningModuleRepo(db, baseLog)
}
func NewLearningModuleTagRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleTagRepo {
	return catalog.NewLearningModuleTagRepo(db, baseLog)
}
func NewLearningModuleVoteRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleVoteRepo {
	return catalog.NewLearningModuleVoteRepo(db, baseLog)
}
func NewUserLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) UserLearningModuleRepo {
	return catalog.NewUserLearningModuleRepo(db, baseLog)
}

func NewResourceModuleMappingRepo(db *gorm.DB, baseLog *logger.Logger) ResourceModuleMappingRepo {
	return catalog.NewResourceModuleMappingRepo(db, baseLog)
}
func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	return catalog.NewUserSettingsRepo(db, baseLog)
}
