package authController

import (
	"lms/database"
	"lms/middleware"
	"lms/serializers"
	"lms/utils"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", serializers.NewUserResponse(user))
}

// UpdateProfile applies the profile write projection. Email and role are not
// part of it and cannot be changed here.
func UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateProfile").(*authValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}
	if reqData.Phone != nil {
		user.Phone = *reqData.Phone
	}
	if reqData.Bio != nil {
		user.Bio = *reqData.Bio
	}
	if reqData.ProfilePicture != nil {
		user.ProfilePicture = *reqData.ProfilePicture
	}

	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", serializers.NewUserResponse(user))
}

// UploadProfilePicture forwards the uploaded image to the blob store and keeps
// the returned URL as the picture reference
func UploadProfilePicture(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"picture": "Picture file is required!",
		})
	}

	url, err := utils.UploadToBlobStore(file, "profile_pictures")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload picture!", nil)
	}

	user.ProfilePicture = url
	if err := database.Database.Db.Save(user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Picture uploaded successfully.", fiber.Map{
		"profile_picture": url,
	})
}
