package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/config"
	"github.com/abhinay-x/studymate-sub001/controller"
	"github.com/abhinay-x/studymate-sub001/dao"
	"github.com/abhinay-x/studymate-sub001/logger"
	"github.com/abhinay-x/studymate-sub001/logic"
	"github.com/abhinay-x/studymate-sub001/middleware"
	"github.com/abhinay-x/studymate-sub001/models"
	"github.com/abhinay-x/studymate-sub001/pkg"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	appLog, err := logger.New(config.GlobalConfig.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.DocumentChunk{},
		&models.Conversation{},
		&models.Message{},
	)

	// Initialize Hugging Face client
	hfCfg := config.GlobalConfig.HuggingFace
	hfClient := pkg.NewHFClient(
		hfCfg.APIKey,
		hfCfg.Model,
		hfCfg.BaseURL,
		pkg.GenerateOptions{
			MaxTokens:   hfCfg.MaxTokens,
			Temperature: hfCfg.Temperature,
			TopP:        hfCfg.TopP,
		},
		time.Duration(hfCfg.TimeoutSeconds)*time.Second,
	)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	documentDAO := dao.NewDocumentDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)

	// Initialize Logics
	chatCfg := config.GlobalConfig.Chat
	quota := logic.NewQuotaLedger(userDAO, chatCfg.DailyQuestionLimit)
	retriever := logic.NewContextRetriever(documentDAO)
	userLogic := logic.NewUserLogic(userDAO, quota)
	documentLogic := logic.NewDocumentLogic(documentDAO)
	convoLogic := logic.NewConversationLogic(convoDAO, documentDAO, messageDAO, appLog)
	messageLogic := logic.NewMessageLogic(
		userDAO,
		convoDAO,
		messageDAO,
		quota,
		retriever,
		hfClient,
		appLog,
		chatCfg.MaxContextChars,
		chatCfg.RetrievalLimit,
		time.Duration(hfCfg.RetryWaitCapSec)*time.Second,
	)

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic)
	documentCtrl := controller.NewDocumentController(documentLogic)
	convoCtrl := controller.NewConversationController(convoLogic)
	messageCtrl := controller.NewMessageController(messageLogic)

	// Setup Gin router
	r := gin.Default()
	r.GET("/user", middleware.Auth, userCtrl.GetUser)
	r.GET("/documents", middleware.Auth, documentCtrl.GetDocuments)
	r.GET("/documents/:id", middleware.Auth, documentCtrl.GetDocument)
	r.POST("/conversations", middleware.Auth, convoCtrl.CreateConversation)
	r.GET("/conversations", middleware.Auth, convoCtrl.GetConversations)
	r.GET("/conversations/:id", middleware.Auth, convoCtrl.GetConversation)
	r.PUT("/conversations/:id", middleware.Auth, convoCtrl.UpdateConversation)
	r.DELETE("/conversations/:id", middleware.Auth, convoCtrl.DeleteConversation)
	r.POST("/conversations/:id/messages", middleware.Auth, messageCtrl.AddMessage)
	r.GET("/conversations/:id/messages", middleware.Auth, messageCtrl.GetMessages)
	r.POST("/conversations/:id/messages/:messageId/feedback", middleware.Auth, messageCtrl.AddFeedback)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		appLog.Fatal("Failed to run server", "error", err)
	}
}
