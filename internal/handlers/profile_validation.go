package handlers

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.Age != nil && (*req.Age <= 0 || *req.Age > 150) {
		return "age must be between 1 and 150"
	}
	if req.WeightKG != nil && *req.WeightKG <= 0 {
		return "weight_kg must be greater than 0"
	}
	if req.SkeletalMuscleMass != nil && *req.SkeletalMuscleMass < 0 {
		return "skeletal_muscle_mass must be 0 or greater"
	}
	if req.BodyFatMass != nil && *req.BodyFatMass < 0 {
		return "body_fat_mass must be 0 or greater"
	}
	if req.BasalMetabolicRate != nil && *req.BasalMetabolicRate < 0 {
		return "basal_metabolic_rate must be 0 or greater"
	}
	return ""
}
