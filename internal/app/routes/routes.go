package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eakgun/sims-backend/internal/app/auth"
	"github.com/eakgun/sims-backend/internal/app/controllers"
	"github.com/eakgun/sims-backend/internal/middleware"
)

// SetupRouter configures all application routes. Everything except login,
// registration and the health probe sits behind token verification; mutating
// routes additionally pass the role policy.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/register", authController.Register)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.GET("/profile", authController.Profile)
			authProtected.POST("/create-admin",
				authMiddleware.RequireOperation(auth.OpAdminCreate), authController.CreateAdmin)
		}

		students := authenticated.Group("/students")
		{
			// my-courses must be registered before :id so gin does not
			// treat the literal segment as an ID
			students.GET("/my-courses",
				authMiddleware.RequireOperation(auth.OpStudentOwnCourses), studentController.MyCourses)
			students.GET("",
				authMiddleware.RequireOperation(auth.OpStudentList), studentController.List)
			students.GET("/:id",
				authMiddleware.RequireOperation(auth.OpStudentRead), studentController.Get)
			students.POST("",
				authMiddleware.RequireOperation(auth.OpStudentCreate), studentController.Create)
			students.PUT("/:id",
				authMiddleware.RequireOperation(auth.OpStudentUpdate), studentController.Update)
			students.DELETE("/:id",
				authMiddleware.RequireOperation(auth.OpStudentDelete), studentController.Delete)
		}

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("/my-courses",
				authMiddleware.RequireOperation(auth.OpTeacherOwnCourses), teacherController.MyCourses)
			teachers.GET("",
				authMiddleware.RequireOperation(auth.OpTeacherList), teacherController.List)
			teachers.GET("/:id",
				authMiddleware.RequireOperation(auth.OpTeacherRead), teacherController.Get)
			teachers.POST("",
				authMiddleware.RequireOperation(auth.OpTeacherCreate), teacherController.Create)
			teachers.PUT("/:id",
				authMiddleware.RequireOperation(auth.OpTeacherUpdate), teacherController.Update)
			teachers.DELETE("/:id",
				authMiddleware.RequireOperation(auth.OpTeacherDelete), teacherController.Delete)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("",
				authMiddleware.RequireOperation(auth.OpCourseList), courseController.List)
			courses.GET("/:id",
				authMiddleware.RequireOperation(auth.OpCourseRead), courseController.Get)
			courses.POST("",
				authMiddleware.RequireOperation(auth.OpCourseCreate), courseController.Create)
			courses.PUT("/:id",
				authMiddleware.RequireOperation(auth.OpCourseUpdate), courseController.Update)
			courses.DELETE("/:id",
				authMiddleware.RequireOperation(auth.OpCourseDelete), courseController.Delete)
			courses.PUT("/:id/assign-teacher",
				authMiddleware.RequireOperation(auth.OpCourseAssignTeacher), courseController.AssignTeacher)
			courses.GET("/:id/students",
				authMiddleware.RequireOperation(auth.OpEnrollmentList), courseController.Students)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("",
				authMiddleware.RequireOperation(auth.OpEnrollmentCreate), enrollmentController.Enroll)
			enrollments.GET("",
				authMiddleware.RequireOperation(auth.OpEnrollmentList), enrollmentController.List)
			enrollments.DELETE("/:id",
				authMiddleware.RequireOperation(auth.OpEnrollmentRemove), enrollmentController.Remove)
			enrollments.PUT("/:id/grade",
				authMiddleware.RequireOperation(auth.OpEnrollmentGrade), enrollmentController.UpdateGrade)
		}
	}
}
