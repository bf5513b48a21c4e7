package app

import (
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Subject      repos.SubjectRepo
	Grade        repos.GradeRepo
	Tag          repos.TagRepo
	Resource     repos.ResourceRepo
	ResourceTag  repos.ResourceTagRepo
	ResourceVote repos.ResourceVoteRepo
	UserResource repos.UserResourceRepo

	LearningModule     repos.LearningModuleRepo
	LearningModuleTag  repos.LearningModuleTagRepo
	LearningModuleVote repos.LearningModuleVoteRepo
	UserLearningModule repos.UserLearningModuleRepo

	ResourceModuleMapping repos.ResourceModuleMappingRepo
	UserSettings          repos.UserSettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Subject:      repos.NewSubjectRepo(db, log),
		Grade:        repos.NewGradeRepo(db, log),
		Tag:          repos.NewTagRepo(db, log),
		Resource:     repos.NewResourceRepo(db, log),
		ResourceTag:  repos.NewResourceTagRepo(db, log),
		ResourceVote: repos.NewResourceVoteRepo(db, log),
		UserResource: repos.NewUserResourceRepo(db, log),

		LearningModule:     repos.NewLearningModuleRepo(db, log),
		LearningModuleTag:  repos.NewLearningModuleTagRepo(db, log),
		LearningModuleVote: repos.NewLearningModuleVoteRepo(db, log),
		UserLearningModule: repos.NewUserLearningModuleRepo(db, log),

		ResourceModuleMapping: repos.NewResourceModuleMappingRepo(db, log),
		UserSettings:          repos.NewUserSettingsRepo(db, log),
	}
}
