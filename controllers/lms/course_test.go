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

func TestListCoursesSearchIsCaseInsensitive(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	createCourse(t, "Intro to Go", instructor.ID)
	createCourse(t, "Advanced Rust", instructor.ID)

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/courses/?search=rust", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var courses []serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Advanced Rust", courses[0].Title)
}

func TestListCoursesDefaultsToActiveOnly(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	createCourse(t, "Visible", instructor.ID)
	inactive := createCourse(t, "Hidden", instructor.ID)
	require.NoError(t, database.Database.Db.Model(&inactive).Update("is_active", false).Error)

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/courses/", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var courses []serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Visible", courses[0].Title)
}

func TestListCoursesFilterByDifficulty(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	createCourse(t, "Basics", instructor.ID)
	advanced := models.Course{
		Title:        "Deep Dive",
		Description:  "for veterans",
		InstructorID: instructor.ID,
		Difficulty:   models.DifficultyAdvanced,
		IsActive:     true,
	}
	require.NoError(t, database.Database.Db.Create(&advanced).Error)

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/courses/?difficulty=advanced", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var courses []serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Deep Dive", courses[0].Title)
}

func TestListCoursesPagination(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	for i := 0; i < 15; i++ {
		createCourse(t, fmt.Sprintf("Course %02d", i), instructor.ID)
	}

	type pagedCourses struct {
		Courses    []serializers.CourseResponse `json:"courses"`
		Pagination struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
		} `json:"pagination"`
	}

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/courses/?page=1&limit=10", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var paged pagedCourses
	require.NoError(t, json.Unmarshal(resp.Data, &paged))
	assert.Len(t, paged.Courses, 10)
	assert.Equal(t, int64(15), paged.Pagination.Total)
	assert.Equal(t, 1, paged.Pagination.Page)
	assert.Equal(t, 10, paged.Pagination.Limit)

	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/courses/?page=2&limit=10", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &paged))
	assert.Len(t, paged.Courses, 5)
	assert.Equal(t, int64(15), paged.Pagination.Total)

	// limit alone paginates too, with page defaulting to 1
	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/courses/?limit=4", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &paged))
	assert.Len(t, paged.Courses, 4)
	assert.Equal(t, 1, paged.Pagination.Page)

	// Without page/limit the full plain list comes back
	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/courses/", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	var plain []serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &plain))
	assert.Len(t, plain, 15)
}

func TestPatchCourseUpdatesOnlySentFields(t *testing.T) {
	app := setupTest(t)
	instructor, token := createUser(t, "teach@example.com", models.RoleInstructor)
	course := createCourse(t, "Original Title", instructor.ID)

	status, resp := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/lms/courses/%d", course.ID), token, map[string]interface{}{
		"title": "Patched Title",
	})
	require.Equal(t, http.StatusOK, status)

	var patched serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &patched))
	assert.Equal(t, "Patched Title", patched.Title)
	assert.Equal(t, course.Description, patched.Description)
	assert.Equal(t, instructor.ID, patched.Instructor)

	var stored models.Course
	require.NoError(t, database.Database.Db.First(&stored, course.ID).Error)
	assert.Equal(t, "Patched Title", stored.Title)
	assert.Equal(t, course.Description, stored.Description)
}

func TestPatchCourseRejectsInvalidDifficulty(t *testing.T) {
	app := setupTest(t)
	instructor, token := createUser(t, "teach@example.com", models.RoleInstructor)
	course := createCourse(t, "Stable", instructor.ID)

	status, resp := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/lms/courses/%d", course.ID), token, map[string]interface{}{
		"difficulty": "impossible",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Errors, "difficulty")
}

func TestInstructorCannotPatchForeignCourse(t *testing.T) {
	app := setupTest(t)
	owner, _ := createUser(t, "owner@example.com", models.RoleInstructor)
	_, otherToken := createUser(t, "other@example.com", models.RoleInstructor)

	course := createCourse(t, "Owned Course", owner.ID)

	status, _ := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/lms/courses/%d", course.ID), otherToken, map[string]interface{}{
		"title": "Hijacked",
	})
	require.Equal(t, http.StatusNotFound, status)

	var unchanged models.Course
	require.NoError(t, database.Database.Db.First(&unchanged, course.ID).Error)
	assert.Equal(t, "Owned Course", unchanged.Title)
}

func TestCreateCourseRejectsNonInstructorAssignment(t *testing.T) {
	app := setupTest(t)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)

	status, resp := doRequest(t, app, http.MethodPost, "/api/lms/courses/", adminToken, map[string]interface{}{
		"title":       "Bad Course",
		"description": "instructor field points at a student",
		"instructor":  student.ID,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Errors, "instructor")

	var count int64
	database.Database.Db.Model(&models.Course{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateCourseAsInstructor(t *testing.T) {
	app := setupTest(t)
	instructor, token := createUser(t, "teach@example.com", models.RoleInstructor)

	status, resp := doRequest(t, app, http.MethodPost, "/api/lms/courses/", token, map[string]interface{}{
		"title":       "Go for Gophers",
		"description": "a proper course",
		"instructor":  instructor.ID,
		"difficulty":  "intermediate",
	})
	require.Equal(t, http.StatusCreated, status)

	var course serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &course))
	assert.Equal(t, "Go for Gophers", course.Title)
	assert.Equal(t, "Test User", course.InstructorName)
	assert.Equal(t, int64(0), course.EnrolledCount)
}

func TestCreateCourseForbiddenForStudent(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	status, _ := doRequest(t, app, http.MethodPost, "/api/lms/courses/", studentToken, map[string]interface{}{
		"title":       "Nope",
		"description": "students cannot create courses",
		"instructor":  instructor.ID,
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestInstructorCannotUpdateForeignCourse(t *testing.T) {
	app := setupTest(t)
	owner, _ := createUser(t, "owner@example.com", models.RoleInstructor)
	other, otherToken := createUser(t, "other@example.com", models.RoleInstructor)

	course := createCourse(t, "Owned Course", owner.ID)

	// The course is hidden from the other instructor's mutation queryset, so
	// the failure reads as not-found rather than forbidden
	status, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/lms/courses/%d", course.ID), otherToken, map[string]interface{}{
		"title":       "Hijacked",
		"description": "should not happen",
		"instructor":  other.ID,
	})
	require.Equal(t, http.StatusNotFound, status)

	var unchanged models.Course
	require.NoError(t, database.Database.Db.First(&unchanged, course.ID).Error)
	assert.Equal(t, "Owned Course", unchanged.Title)
}

func TestGetCourseIsIdempotent(t *testing.T) {
	app := setupTest(t)
	instructor, _ := createUser(t, "teach@example.com", models.RoleInstructor)
	_, studentToken := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Stable Course", instructor.ID)

	path := fmt.Sprintf("/api/lms/courses/%d", course.ID)
	status1, resp1 := doRequest(t, app, http.MethodGet, path, studentToken, nil)
	status2, resp2 := doRequest(t, app, http.MethodGet, path, studentToken, nil)

	require.Equal(t, http.StatusOK, status1)
	require.Equal(t, http.StatusOK, status2)
	assert.JSONEq(t, string(resp1.Data), string(resp2.Data))
}

func TestMyCoursesPerRole(t *testing.T) {
	app := setupTest(t)
	instructor, instructorToken := createUser(t, "teach@example.com", models.RoleInstructor)
	other, _ := createUser(t, "other@example.com", models.RoleInstructor)
	student, studentToken := createUser(t, "student@example.com", models.RoleStudent)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	mine := createCourse(t, "Mine", instructor.ID)
	createCourse(t, "Theirs", other.ID)

	enrollment := models.Enrollment{StudentID: student.ID, CourseID: mine.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, resp := doRequest(t, app, http.MethodGet, "/api/lms/courses/my_courses", instructorToken, nil)
	require.Equal(t, http.StatusOK, status)
	var courses []serializers.CourseResponse
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Mine", courses[0].Title)

	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/courses/my_courses", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Mine", courses[0].Title)

	status, resp = doRequest(t, app, http.MethodGet, "/api/lms/courses/my_courses", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &courses))
	assert.Len(t, courses, 2)
}

func TestDeleteCourseCascades(t *testing.T) {
	app := setupTest(t)
	instructor, token := createUser(t, "teach@example.com", models.RoleInstructor)
	student, _ := createUser(t, "student@example.com", models.RoleStudent)

	course := createCourse(t, "Doomed", instructor.ID)
	lesson := models.Lesson{CourseID: course.ID, Title: "L1", Content: "c", LessonType: models.LessonText, Order: 1}
	require.NoError(t, database.Database.Db.Create(&lesson).Error)
	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.StatusEnrolled, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	status, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/lms/courses/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var lessons, enrollments int64
	database.Database.Db.Model(&models.Lesson{}).Where("course_id = ?", course.ID).Count(&lessons)
	database.Database.Db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	assert.Equal(t, int64(0), lessons)
	assert.Equal(t, int64(0), enrollments)
}
