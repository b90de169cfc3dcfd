/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import (
	"strconv"
	"time"
)

type BackupComponent string

const (
	ComponentCodebase     BackupComponent = "codebase"
	ComponentDatabase     BackupComponent = "database"
	ComponentPublicFiles  BackupComponent = "public files"
	ComponentPrivateFiles BackupComponent = "private files"
	ComponentThemes       BackupComponent = "themes"
)

// BackupList is returned when listing the backups of a site.
type BackupList struct {
	Count   int      `json:"count"`
	Backups []Backup `json:"backups"`
}

type Backup struct {
	ID         int               `json:"id"`
	NID        int               `json:"nid"`
	Status     int               `json:"status"`
	UID        int               `json:"uid"`
	Timestamp  int64             `json:"timestamp"`
	Bucket     string            `json:"bucket,omitempty"`
	Directory  string            `json:"directory,omitempty"`
	File       string            `json:"file,omitempty"`
	Label      string            `json:"label,omitempty"`
	Components []BackupComponent `json:"componentList,omitempty"`
}

// CreatedAt converts the unix timestamp of the backup.
func (b Backup) CreatedAt() time.Time {
	return time.Unix(b.Timestamp, 0).UTC()
}

func (b Backup) IDString() string {
	return strconv.Itoa(b.ID)
}

// BackupURL is a temporary download URL for a backup archive.
type BackupURL struct {
	URL      string `json:"url"`
	Lifetime int    `json:"lifetime,omitempty"`
}

// Task is returned by operations the API executes asynchronously.
type Task struct {
	TaskID  int    `json:"task_id"`
	Message string `json:"message,omitempty"`
}

// Expiration is the global backup expiration policy.
type Expiration struct {
	ExpirationDays int `json:"expiration_days"`
}
