package v1

import "github.com/rmg-labs/incident-service/internal/models"

// RegisterRequestToUserModel преобразует DTO регистрации в доменную модель
func RegisterRequestToUserModel(dto RegisterRequest) *models.User {
	return &models.User{
		Email:       dto.Email,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
		Pincode:     dto.Pincode,
		City:        dto.City,
		Country:     dto.Country,
	}
}

// UpdateProfileRequestToUserModel преобразует DTO обновления профиля в доменную модель
func UpdateProfileRequestToUserModel(dto UpdateProfileRequest) *models.User {
	return &models.User{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
		Pincode:     dto.Pincode,
		City:        dto.City,
		Country:     dto.Country,
	}
}

// ModelToUserResponse преобразует доменную модель в DTO для ответа.
// Хэш пароля в ответ не попадает.
func ModelToUserResponse(model *models.User) *UserResponse {
	return &UserResponse{
		ID:          model.ID,
		Email:       model.Email,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		PhoneNumber: model.PhoneNumber,
		Address:     model.Address,
		Pincode:     model.Pincode,
		City:        model.City,
		Country:     model.Country,
		CreatedAt:   model.CreatedAt,
		LastLogin:   model.LastLogin,
	}
}

// CreateIncidentRequestToModel преобразует DTO создания инцидента в доменную модель
func CreateIncidentRequestToModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		ReporterType: dto.ReporterType,
		Details:      dto.Details,
		Priority:     dto.Priority,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           model.ID,
		IncidentID:   model.IncidentID,
		ReporterID:   model.ReporterID,
		ReporterType: model.ReporterType,
		Details:      model.Details,
		Priority:     model.Priority,
		Status:       model.Status,
		ReportedAt:   model.ReportedAt,
		UpdatedAt:    model.UpdatedAt,
		IsEditable:   model.IsEditable(),
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToPincodeResponse преобразует запись справочника в DTO для ответа
func ModelToPincodeResponse(model *models.PincodeData) *PincodeResponse {
	return &PincodeResponse{
		Pincode: model.Pincode,
		City:    model.City,
		State:   model.State,
		Country: model.Country,
	}
}
