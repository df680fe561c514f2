package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classtime/backend/internal/dto"
	"classtime/backend/internal/service"
	"classtime/backend/pkg/response"
)

// 基础数据四类实体的处理器形态完全一致：列表/详情/创建/更新/删除。
// 服务层已收敛在泛型核心上，这里保留每实体一个具名处理器，
// 路由与权限配置按实体粒度展开。

// ════════════════════════ Teacher ════════════════════════

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// ListTeachers 获取教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": teachers})
}

// GetTeacher 获取教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	teacher, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, teacher)
}

// CreateTeacher 创建教师
// POST /api/v1/teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateTeacher 更新教师
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.teacherSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, teacher)
}

// DeleteTeacher 删除教师
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	if err := h.teacherSvc.Delete(c.Request.Context(), id); err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, nil)
}

// ════════════════════════ Subject ════════════════════════

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects 获取科目列表
// GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": subjects})
}

// GetSubject 获取科目详情
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, subject)
}

// CreateSubject 创建科目
// POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.Created(c, subject)
}

// UpdateSubject 更新科目
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, subject)
}

// DeleteSubject 删除科目
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, nil)
}

// ════════════════════════ Class ════════════════════════

// ClassHandler 班级模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// ListClasses 获取班级列表
// GET /api/v1/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": classes})
}

// GetClass 获取班级详情
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, class)
}

// CreateClass 创建班级
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.Created(c, class)
}

// UpdateClass 更新班级
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, class)
}

// DeleteClass 删除班级
// DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id); err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, nil)
}

// ════════════════════════ Room ════════════════════════

// RoomHandler 教室模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ListRooms 获取教室列表
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": rooms})
}

// GetRoom 获取教室详情
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	room, err := h.roomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, room)
}

// CreateRoom 创建教室
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom 更新教室
// PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, room)
}

// DeleteRoom 删除教室
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	if err := h.roomSvc.Delete(c.Request.Context(), id); err != nil {
		handleMasterDataError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleMasterDataError 统一处理基础数据模块业务错误
func handleMasterDataError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12001, "教师不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12002, "科目不存在")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12003, "班级不存在")
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 12004, "教室不存在")
	default:
		response.InternalError(c)
	}
}
