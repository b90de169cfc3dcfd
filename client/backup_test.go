package client_test

import (
	"net/http"
	"strconv"

	"github.com/gogo/protobuf/proto"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/ibm/sfrest/api/v1"
	"github.com/ibm/sfrest/backup"
	"github.com/ibm/sfrest/connection"
)

var _ = Describe("backups", func() {
	const path = "/api/v1/sites"

	Describe("get backups", func() {
		It("calls the get backups endpoint", func() {
			nid := randomID(100000)
			res, err := sf.Backup().GetBackups(ctx, nid, nil)
			Expect(err).ToNot(HaveOccurred())

			uri := echoedURI(res)
			Expect(uri.Path).To(Equal(path + "/" + nid + "/backups"))
			Expect(uri.RawQuery).To(BeEmpty())
			Expect(res["method"]).To(Equal("get"))
		})

		It("calls the get backups endpoint with parameters", func() {
			nid := randomID(100000)
			params := backup.Params{{Key: "page", Value: 10}, {Key: "limit", Value: 100}}
			res, err := sf.Backup().GetBackups(ctx, nid, params)
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal(path + "/" + nid + "/backups"))
			query := echoedQuery(res)
			Expect(query.Get("page")).To(Equal("10"))
			Expect(query.Get("limit")).To(Equal("100"))
			Expect(echoedURI(res).RawQuery).To(Equal("page=10&limit=100"))
			Expect(res["method"]).To(Equal("get"))
		})

		It("calls the get backups endpoint with list options", func() {
			nid := randomID(100000)
			res, err := sf.Backup().ListBackups(ctx, nid, backup.ListOptions{Page: 2, Limit: 20})
			Expect(err).ToNot(HaveOccurred())

			query := echoedQuery(res)
			Expect(query.Get("page")).To(Equal("2"))
			Expect(query.Get("limit")).To(Equal("20"))
			Expect(query).ToNot(HaveKey("order"))
		})
	})

	Describe("backup url", func() {
		It("calls the backup url endpoint", func() {
			nid, bid := randomID(100000), randomID(100000)
			res, err := sf.Backup().BackupURL(ctx, nid, bid, backup.URLOptions{})
			Expect(err).ToNot(HaveOccurred())

			uri := echoedURI(res)
			Expect(uri.Path).To(Equal(path + "/" + nid + "/backups/" + bid + "/url"))
			Expect(uri.RawQuery).To(Equal("lifetime=60"))
			Expect(res["method"]).To(Equal("get"))
		})

		It("sends the requested url lifetime", func() {
			nid, bid := randomID(100000), randomID(100000)
			lifetime := random.Intn(10000)
			res, err := sf.Backup().BackupURL(ctx, nid, bid, backup.URLOptions{Lifetime: proto.Int32(int32(lifetime))})
			Expect(err).ToNot(HaveOccurred())

			uri := echoedURI(res)
			Expect(uri.Path).To(Equal(path + "/" + nid + "/backups/" + bid + "/url"))
			Expect(uri.RawQuery).To(Equal("lifetime=" + strconv.Itoa(lifetime)))
			Expect(res["method"]).To(Equal("get"))
		})

		It("sends a zero url lifetime", func() {
			res, err := sf.Backup().BackupURL(ctx, "12", "34", backup.URLOptions{Lifetime: proto.Int32(0)})
			Expect(err).ToNot(HaveOccurred())
			Expect(echoedURI(res).RawQuery).To(Equal("lifetime=0"))
		})
	})

	Describe("delete backup", func() {
		It("calls the delete backup endpoint", func() {
			nid, bid := randomID(100000), randomID(100000)
			res, err := sf.Backup().DeleteBackup(ctx, nid, bid)
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal(path + "/" + nid + "/backups/" + bid))
			Expect(res["method"]).To(Equal("delete"))
		})
	})

	Describe("create backup", func() {
		It("calls the create backup endpoint", func() {
			nid := randomID(100000)
			res, err := sf.Backup().CreateBackup(ctx, nid, backup.CreateOptions{})
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal(path + "/" + nid + "/backup"))
			Expect(echoedBody(res)).To(MatchJSON(`{}`))
			Expect(res["method"]).To(Equal("post"))
		})

		It("can backup with options", func() {
			nid := randomID(100000)
			res, err := sf.Backup().CreateBackup(ctx, nid, backup.CreateOptions{Label: "foo", CallbackData: "bar"})
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal(path + "/" + nid + "/backup"))
			Expect(echoedBody(res)).To(MatchJSON(`{"label":"foo","callback_data":"bar"}`))
			Expect(res["method"]).To(Equal("post"))
		})
	})

	Describe("backup expiration", func() {
		It("sets the backup expiration setting", func() {
			res, err := sf.Backup().ExpirationSet(ctx, 100)
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal("/api/v1/backup-expiration/"))
			Expect(echoedBody(res)).To(MatchJSON(`{"expiration_days":100}`))
			Expect(res["method"]).To(Equal("put"))

			var setting v1.Expiration
			Expect(connection.Response{"expiration_days": float64(100)}.Decode(&setting)).To(Succeed())
			Expect(setting.ExpirationDays).To(Equal(100))
		})

		It("gets the backup expiration setting", func() {
			res, err := sf.Backup().ExpirationGet(ctx)
			Expect(err).ToNot(HaveOccurred())

			Expect(echoedURI(res).Path).To(Equal("/api/v1/backup-expiration/"))
			Expect(res["method"]).To(Equal("get"))
		})
	})

	Describe("failures", func() {
		It("returns the error of the API unchanged", func() {
			server.FailWith(http.StatusNotFound, "Site 12 not found")
			_, err := sf.Backup().DeleteBackup(ctx, "12", "1")
			Expect(err).To(MatchError("Status: 404, Message: Site 12 not found"))
			Expect(connection.StatusCode(err)).To(Equal(http.StatusNotFound))
		})

		It("sends every request to the server exactly once", func() {
			_, err := sf.Backup().ExpirationGet(ctx)
			Expect(err).ToNot(HaveOccurred())
			_, err = sf.Backup().CreateBackup(ctx, "7", backup.CreateOptions{Label: "nightly"})
			Expect(err).ToNot(HaveOccurred())

			requests := server.Requests()
			Expect(requests).To(HaveLen(2))
			Expect(requests[0].Method).To(Equal("get"))
			Expect(requests[1].Method).To(Equal("post"))
			Expect(requests[1].Body).To(MatchJSON(`{"label":"nightly"}`))
		})
	})
})
