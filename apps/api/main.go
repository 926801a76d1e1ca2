package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/gradnet/backend/apps/api/echo"
	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/admin"
	"github.com/gradnet/backend/core/announcement"
	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
	emailsvc "github.com/gradnet/backend/services/email"
	logsvc "github.com/gradnet/backend/services/logger"
	storagesvc "github.com/gradnet/backend/services/storage"
	"github.com/gradnet/backend/storage/database"
	sqlxrepos "github.com/gradnet/backend/storage/database/sqlx"
)

func main() {
	conf := core.Conf

	// set up logger
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer db.Close()
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up repositories
	profileRepo := sqlxrepos.NewProfileRepository(sdb)
	messageRepo := sqlxrepos.NewMessageRepository(sdb)
	announcementRepo := sqlxrepos.NewAnnouncementRepository(sdb)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	profileSvc := profile.NewService(profileRepo)
	messageSvc := message.NewService(messageRepo, profileSvc, mailSvc)
	announcementSvc := announcement.NewService(announcementRepo, profileSvc, mailSvc)
	adminSvc := admin.NewService(profileRepo, messageRepo, announcementRepo)

	storage, err := storagesvc.NewLocalStorage(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up media storage: %v", err), err)
	}

	// set up validation
	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	logger.Info(fmt.Sprintf("%s API initializing : version %q", conf.AppName, conf.Build))

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:            conf.Server.Addr(),
			MediaDir:        storage.Root(),
			Logger:          logger,
			Storage:         storage,
			ProfileSvc:      profileSvc,
			MessageSvc:      messageSvc,
			AnnouncementSvc: announcementSvc,
			AdminSvc:        adminSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)
	app.Start()
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
