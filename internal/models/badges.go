package models

// Badge variants, named after the dashboard's color classes.
const (
	BadgeSuccess   = "success"
	BadgeWarning   = "warning"
	BadgeDanger    = "danger"
	BadgePrimary   = "primary"
	BadgeInfo      = "info"
	BadgeSecondary = "secondary"
)

func StaffRoleBadge(role string) string {
	switch role {
	case RoleAdmin:
		return BadgeDanger
	case RoleManager:
		return BadgeWarning
	case RoleStaff:
		return BadgePrimary
	default:
		return BadgeSecondary
	}
}

func StaffStatusBadge(status string) string {
	if status == StaffActive {
		return BadgeSuccess
	}
	return BadgeDanger
}

func BookingStatusBadge(status string) string {
	switch status {
	case BookingPending:
		return BadgeWarning
	case BookingConfirmed:
		return BadgePrimary
	case BookingActive:
		return BadgeInfo
	case BookingCompleted:
		return BadgeSuccess
	case BookingCancelled:
		return BadgeDanger
	default:
		return BadgeSecondary
	}
}

func PaymentStatusBadge(status string) string {
	switch status {
	case PaymentPaid:
		return BadgeSuccess
	case PaymentPending:
		return BadgeWarning
	default:
		return BadgeSecondary
	}
}

func RunningStatusBadge(status string) string {
	switch status {
	case RunningAvailable:
		return BadgeSuccess
	case RunningBooked:
		return BadgeDanger
	default:
		return BadgeSecondary
	}
}

func VehicleStatusBadge(status string) string {
	switch status {
	case VehicleActive:
		return BadgeSuccess
	case VehicleOnHold:
		return BadgeWarning
	default:
		return BadgeSecondary
	}
}

func DocumentBadge(status string) string {
	switch status {
	case DocumentApproved:
		return BadgeSuccess
	case DocumentRejected:
		return BadgeDanger
	case DocumentPending:
		return BadgeWarning
	default:
		return BadgeSecondary
	}
}
