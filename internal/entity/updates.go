package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Username     *string
	PasswordHash *string
	Role         *string
	Name         *string
	Department   **string
	Birth        **string
	Gender       **string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Username != nil {
		updates["username"] = *u.Username
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Department != nil {
		updates["department"] = *u.Department
	}
	if u.Birth != nil {
		updates["birth"] = *u.Birth
	}
	if u.Gender != nil {
		updates["gender"] = *u.Gender
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TreatmentUpdates 医生保存诊疗记录时整体覆盖的字段
type TreatmentUpdates struct {
	Status        string
	Memo          *string
	Diagnosis     *string
	Prescription  *string
	DoctorOpinion *string
}

// ToMap 转换为 GORM 更新 map（内部使用），nil 字段写入 NULL
func (u TreatmentUpdates) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"status":         u.Status,
		"memo":           u.Memo,
		"diagnosis":      u.Diagnosis,
		"prescription":   u.Prescription,
		"doctor_opinion": u.DoctorOpinion,
	}
}

// PostUpdates 帖子更新字段
type PostUpdates struct {
	Title    *string
	Content  *string
	Category *string
	FilePath **string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u PostUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.Category != nil {
		updates["category"] = *u.Category
	}
	if u.FilePath != nil {
		updates["file_path"] = *u.FilePath
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u PostUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
