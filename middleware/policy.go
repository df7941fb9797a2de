package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Role predicates are pure functions over the caller's role. They fail closed:
// an unknown or empty role never passes.

func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}

func IsInstructor(role models.Role) bool {
	return role == models.RoleInstructor
}

func IsStudent(role models.Role) bool {
	return role == models.RoleStudent
}

func IsAdminOrInstructor(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleInstructor:
		return true
	case models.RoleStudent:
		return false
	}
	return false
}

// IsInstructorOrReadOnly permits read-only access for any role and mutations
// for instructors only
func IsInstructorOrReadOnly(role models.Role, readOnly bool) bool {
	if readOnly {
		return role.Valid()
	}
	return IsInstructor(role)
}

// CanModifyCourse is the object-level course policy: reads are always allowed,
// mutations only for the instructor of record
func CanModifyCourse(user *models.User, course *models.Course, readOnly bool) bool {
	if readOnly {
		return true
	}
	return user != nil && course.InstructorID == user.ID
}

// IsEnrollmentOwner permits access only to the enrollment's student
func IsEnrollmentOwner(user *models.User, enrollment *models.Enrollment) bool {
	return user != nil && enrollment.StudentID == user.ID
}

// CurrentUser loads the authenticated user set by JWTMiddleware. Returns nil
// when the token is missing or the account no longer exists.
func CurrentUser(c *fiber.Ctx) *models.User {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}

// RequireRoles returns a middleware that rejects callers whose role is not in
// the allowed set
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
