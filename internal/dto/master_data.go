package dto

// ── 基础数据模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name       string  `json:"name"        binding:"required,min=2,max=50"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,max=50"`
	ProfileID  *string `json:"profile_id"  binding:"omitempty,uuid"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=50"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,max=50"`
	ProfileID  *string `json:"profile_id"  binding:"omitempty,uuid"`
}

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name        string  `json:"name"        binding:"required,min=1,max=100"`
	Code        *string `json:"code"        binding:"omitempty,max=20"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// UpdateSubjectRequest 更新科目请求
type UpdateSubjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Code        *string `json:"code"        binding:"omitempty,max=20"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name         string `json:"name"          binding:"required,min=1,max=50"`
	Grade        *int   `json:"grade"         binding:"omitempty,min=1,max=12"`
	AcademicYear string `json:"academic_year" binding:"omitempty,max=20"`
}

// UpdateClassRequest 更新班级请求
type UpdateClassRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=50"`
	Grade        *int    `json:"grade"         binding:"omitempty,min=1,max=12"`
	AcademicYear *string `json:"academic_year" binding:"omitempty,max=20"`
}

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=50"`
	Capacity *int   `json:"capacity" binding:"omitempty,min=1"`
	Location string `json:"location" binding:"omitempty,max=100"`
}

// UpdateRoomRequest 更新教室请求
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=50"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	Location *string `json:"location" binding:"omitempty,max=100"`
}

// ── 响应 ──

// TeacherResponse 教师响应
type TeacherResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	EmployeeID *string `json:"employee_id,omitempty"`
	ProfileID  *string `json:"profile_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ClassResponse 班级响应
type ClassResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Grade        *int   `json:"grade,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// RoomResponse 教室响应
type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  *int   `json:"capacity,omitempty"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
