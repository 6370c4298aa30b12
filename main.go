package main

import (
	"log"
	"time"

	"quiz-platform/internal/config"
	"quiz-platform/internal/db"
	"quiz-platform/internal/event"
	"quiz-platform/internal/handlers"
	"quiz-platform/internal/middleware"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"
	"quiz-platform/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	gin.SetMode(config.AppConfig.GinMode)

	db.InitMongo(config.AppConfig.MongoURI)
	defer db.Close()

	var publisher *event.EventPublisher
	if config.AppConfig.RabbitMQURI != "" && config.AppConfig.EventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(config.AppConfig.RabbitMQURI, config.AppConfig.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, lifecycle events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(config.AppConfig.MongoDatabase)

	quizRepo := repository.NewQuizRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	resultRepo := repository.NewResultRepository(database)
	userRepo := repository.NewUserRepository(database)

	quizService := service.NewQuizService(db.Client, quizRepo, questionRepo, resultRepo)
	questionService := service.NewQuestionService(db.Client, questionRepo, quizRepo)
	resultService := service.NewResultService(resultRepo, quizRepo, questionRepo, userRepo)
	authService := service.NewAuthService(userRepo, middleware.SignToken, config.AppConfig.AdminEmail)

	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	resultHandler := handlers.NewResultHandler(resultService)
	authHandler := handlers.NewAuthHandler(authService)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Quiz Platform API is running")
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			authHandler.Register(c)
			publisher.Publish("user.registered", gin.H{"status": c.Writer.Status()})
		})
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", middleware.Protect(), authHandler.Profile)
	}

	quizzes := r.Group("/api/quizzes")
	{
		quizzes.GET("/", quizHandler.ListQuizzes)
		quizzes.GET("/:id", quizHandler.GetQuiz)

		adminQuizzes := quizzes.Group("", middleware.Protect(), middleware.Authorize(models.RoleAdmin))
		adminQuizzes.POST("/", func(c *gin.Context) {
			quizHandler.CreateQuiz(c)
			publisher.Publish("quiz.created", gin.H{"status": c.Writer.Status()})
		})
		adminQuizzes.PUT("/:id", func(c *gin.Context) {
			quizHandler.UpdateQuiz(c)
			publisher.Publish("quiz.updated", gin.H{"id": c.Param("id"), "status": c.Writer.Status()})
		})
		adminQuizzes.DELETE("/:id", func(c *gin.Context) {
			quizHandler.DeleteQuiz(c)
			publisher.Publish("quiz.deleted", gin.H{"id": c.Param("id"), "status": c.Writer.Status()})
		})
	}

	questions := r.Group("/api/questions")
	{
		questions.GET("/quiz/:quizId", questionHandler.ListByQuiz)

		adminQuestions := questions.Group("", middleware.Protect(), middleware.Authorize(models.RoleAdmin))
		adminQuestions.POST("/", func(c *gin.Context) {
			questionHandler.CreateQuestion(c)
			publisher.Publish("question.created", gin.H{"status": c.Writer.Status()})
		})
		adminQuestions.PUT("/:id", func(c *gin.Context) {
			questionHandler.UpdateQuestion(c)
			publisher.Publish("question.updated", gin.H{"id": c.Param("id"), "status": c.Writer.Status()})
		})
		adminQuestions.DELETE("/:id", func(c *gin.Context) {
			questionHandler.DeleteQuestion(c)
			publisher.Publish("question.deleted", gin.H{"id": c.Param("id"), "status": c.Writer.Status()})
		})
	}

	results := r.Group("/api/results", middleware.Protect())
	{
		results.POST("/", func(c *gin.Context) {
			resultHandler.SubmitResult(c)
			publisher.Publish("result.submitted", gin.H{"status": c.Writer.Status()})
		})
		results.GET("/my-results", resultHandler.GetMyResults)
		results.GET("/all", middleware.Authorize(models.RoleAdmin), resultHandler.GetAllResults)
		results.GET("/:id", resultHandler.GetResult)
	}

	if err := r.Run(":" + config.AppConfig.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
