package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	notificationAppName = "pid2go"

	// see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
	IconDialogError = "dialog-error"

	UrgencyCritical = "critical"
)

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend shows a desktop notification to the user owning the current X display.
// Failures are only logged, a headless controller must keep running.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Skipping notification, missing env variable 'DISPLAY'")
		return
	}

	user, userId, err := findDisplayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", notificationAppName,
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err = cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

// findDisplayUser returns name and id of the user logged into the given display
func findDisplayUser(display string) (user string, userId string, err error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", "", fmt.Errorf("unable to list logged in users: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			user = fields[0]
			break
		}
	}
	if len(user) <= 0 {
		return "", "", errors.New("unable to detect user of current display session")
	}

	output, err = exec.Command("id", "-u", user).Output()
	userId = strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		return "", "", fmt.Errorf("unable to detect user id of %s: %v", user, err)
	}
	return user, userId, nil
}
