package enums

import "testing"

func TestNotificationTypeIsValid(t *testing.T) {
	for _, typ := range validNotificationTypes {
		if !typ.IsValid() {
			t.Fatalf("expected %s to be valid", typ)
		}
	}
	if NotificationType("price_drop").IsValid() {
		t.Fatal("expected unknown type to be invalid")
	}
}

func TestParseNotificationType(t *testing.T) {
	typ, err := ParseNotificationType("low_stock")
	if err != nil {
		t.Fatalf("ParseNotificationType: %v", err)
	}
	if typ != NotificationTypeLowStock {
		t.Fatalf("unexpected type %s", typ)
	}
	if _, err := ParseNotificationType("LOW_STOCK"); err == nil {
		t.Fatal("expected parse to be case-sensitive")
	}
}

func TestParseNotificationPriority(t *testing.T) {
	pri, err := ParseNotificationPriority("urgent")
	if err != nil {
		t.Fatalf("ParseNotificationPriority: %v", err)
	}
	if pri != NotificationPriorityUrgent {
		t.Fatalf("unexpected priority %s", pri)
	}
	if _, err := ParseNotificationPriority("critical"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}
