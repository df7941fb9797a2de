package lmsController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"lms/database"
	"lms/models"
	"lms/serializers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesEnrollment(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)

	status, resp := doRequest(t, app, http.MethodPost, enrollPath(course.ID), studentToken, nil)
	require.Equal(t, http.StatusCreated, status)

	var enrollment serializers.EnrollmentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &enrollment))
	assert.Equal(t, models.StatusEnrolled, enrollment.Status)
	assert.Equal(t, float64(0), enrollment.ProgressPercentage)
	assert.Equal(t, "Go Basics", enrollment.CourseTitle)
}

func TestEnrollTwiceFailsAndKeepsOneRow(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)

	status, _ := doRequest(t, app, http.MethodPost, enrollPath(course.ID), studentToken, nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := doRequest(t, app, http.MethodPost, enrollPath(course.ID), studentToken, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Errors, "course")

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollRejectsNonStudents(t *testing.T) {
	app := setupTest(t)
	instructor, instructorToken := createUser(t, "teach@example.com", models.RoleInstructor)
	course := createCourse(t, "Go Basics", instructor.ID)

	status, _ := doRequest(t, app, http.MethodPost, enrollPath(course.ID), instructorToken, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestEnrollRejectsInactiveCourse(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Retired", instructor.ID)
	require.NoError(t, database.Database.Db.Model(&course).Update("is_active", false).Error)

	status, _ := doRequest(t, app, http.MethodPost, enrollPath(course.ID), studentToken, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func progressPath(enrollmentID uint) string {
	return fmt.Sprintf("/api/lms/enrollments/%d/update_progress", enrollmentID)
}

func TestUpdateProgressDerivesStatus(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	// Partial progress moves the enrollment to in_progress
	status, resp := doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), studentToken, map[string]interface{}{
		"progress_percentage": 45,
	})
	require.Equal(t, http.StatusOK, status)
	var updated serializers.EnrollmentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, float64(45), updated.ProgressPercentage)

	// Progress 0 keeps the current status
	status, resp = doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), studentToken, map[string]interface{}{
		"progress_percentage": 0,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, float64(0), updated.ProgressPercentage)

	// Full progress completes the enrollment and stamps completed_at
	status, resp = doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), studentToken, map[string]interface{}{
		"progress_percentage": 100,
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateProgressRoundsToTwoDecimals(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, resp := doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), studentToken, map[string]interface{}{
		"progress_percentage": 33.333,
	})
	require.Equal(t, http.StatusOK, status)

	var updated serializers.EnrollmentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, 33.33, updated.ProgressPercentage)
}

func TestUpdateProgressRejectsOutOfRange(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, resp := doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), studentToken, map[string]interface{}{
		"progress_percentage": 120,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Errors, "progress_percentage")
}

func TestUpdateProgressHiddenFromOtherStudents(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)
	_, otherToken := createUser(t, "other@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	// Another student's enrollment is outside the caller's visible set
	status, _ := doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), otherToken, map[string]interface{}{
		"progress_percentage": 50,
	})
	require.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProgressAllowedForCourseInstructor(t *testing.T) {
	app := setupTest(t)
	instructor, instructorToken := createUser(t, "teach@example.com", models.RoleInstructor)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Go Basics", instructor.ID)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, resp := doRequest(t, app, http.MethodPost, progressPath(enrollment.ID), instructorToken, map[string]interface{}{
		"progress_percentage": 75,
	})
	require.Equal(t, http.StatusOK, status)

	var updated serializers.EnrollmentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestInstructorCanRemoveEnrollmentInOwnCourse(t *testing.T) {
	app := setupTest(t)
	instructor, instructorToken := createUser(t, "teach@example.com", models.RoleInstructor)
	other, _ := createUser(t, "other@example.com", models.RoleInstructor)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)

	taught := createCourse(t, "Taught", instructor.ID)
	foreign := createCourse(t, "Foreign", other.ID)

	mine := models.Enrollment{StudentID: student.ID, CourseID: taught.ID, Status: models.StatusEnrolled, IsActive: true}
	theirs := models.Enrollment{StudentID: student.ID, CourseID: foreign.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&mine).Error)
	require.NoError(t, database.Database.Db.Create(&theirs).Error)

	status, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/lms/enrollments/%d", mine.ID), instructorToken, nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).Where("id = ?", mine.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// A foreign course's enrollment stays out of reach
	status, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/lms/enrollments/%d", theirs.ID), instructorToken, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestListEnrollmentsScopedByRole(t *testing.T) {
	app := setupTest(t)
	instructor, instructorToken := createUser(t, "teach@example.com", models.RoleInstructor)
	other, _ := createUser(t, "other@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)
	second, _ := createUser(t, "second@example.com", models.RoleStudent)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	taught := createCourse(t, "Taught", instructor.ID)
	foreign := createCourse(t, "Foreign", other.ID)

	for _, e := range []models.Enrollment{
		{StudentID: student.ID, CourseID: taught.ID, Status: models.StatusEnrolled, IsActive: true},
		{StudentID: second.ID, CourseID: foreign.ID, Status: models.StatusEnrolled, IsActive: true},
	} {
		require.NoError(t, database.Database.Db.Create(&e).Error)
	}

	var enrollments []serializers.EnrollmentResponse

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/enrollments/", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &enrollments))
	require.Len(t, enrollments, 1)
	assert.Equal(t, student.ID, enrollments[0].Student)

	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/enrollments/", instructorToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &enrollments))
	require.Len(t, enrollments, 1)
	assert.Equal(t, "Taught", enrollments[0].CourseTitle)

	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/enrollments/", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &enrollments))
	assert.Len(t, enrollments, 2)
}
