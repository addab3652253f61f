package api

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/app"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/export"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/gofiber/fiber/v2"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

func me(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Auth.Me(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(u)
	}
}

// ---- projects ----

func listProjects(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if status := c.Query("status"); status != "" {
			ps, err := svc.Projects.ListByStatus(c.UserContext(), domain.ProjectStatus(status))
			if err != nil {
				return err
			}
			return c.JSON(ps)
		}
		ps, err := svc.Projects.List(c.UserContext(), c.QueryBool("include_archived"))
		if err != nil {
			return err
		}
		return c.JSON(ps)
	}
}

func createProject(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in projectInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		p := &domain.Project{StartDate: domain.StartOfDay(time.Now())}
		if err := in.apply(p); err != nil {
			return err
		}
		if err := svc.Projects.Create(c.UserContext(), p); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func getProject(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Projects.Resolve(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

func updateProject(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Projects.Resolve(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		var in projectInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		if err := in.apply(p); err != nil {
			return err
		}
		if err := svc.Projects.Update(c.UserContext(), p); err != nil {
			return err
		}
		return c.JSON(p)
	}
}

func deleteProject(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Projects.Resolve(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		if err := svc.Projects.Delete(c.UserContext(), p.ID, c.QueryBool("force")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ---- tasks ----

func listTasks(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.Tasks.List(c.UserContext(), repository.TaskFilter{
			ProjectID:  c.Query("project_id"),
			Status:     domain.TaskStatus(c.Query("status")),
			ResourceID: c.Query("resource_id"),
		})
		if err != nil {
			return err
		}
		return c.JSON(ts)
	}
}

func createTask(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var t domain.Task
		if err := parseBody(c, &t); err != nil {
			return err
		}
		if err := svc.Tasks.Create(c.UserContext(), &t); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(&t)
	}
}

func updateTask(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := svc.Tasks.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		id, projectID, created := t.ID, t.ProjectID, t.CreatedAt
		if err := parseBody(c, t); err != nil {
			return err
		}
		t.ID, t.CreatedAt = id, created
		if t.ProjectID == "" {
			t.ProjectID = projectID
		}
		if err := svc.Tasks.Update(c.UserContext(), t); err != nil {
			return err
		}
		return c.JSON(t)
	}
}

func deleteTask(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Tasks.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ---- resources ----

func listResources(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rs, err := svc.Resources.List(c.UserContext(), domain.ResourceType(c.Query("type")))
		if err != nil {
			return err
		}
		return c.JSON(rs)
	}
}

func createResource(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in resourceInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		r, err := in.toDomain()
		if err != nil {
			return err
		}
		if err := svc.Resources.Create(c.UserContext(), r); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

func deleteResource(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Resources.Delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func utilization(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := contract.NewUtilizationRequest()
		req.ProjectID = c.Query("project_id")
		req.ResourceType = c.Query("type")
		req.OnlyProblems = c.QueryBool("only_problems")
		resp, err := svc.Utilization.Compute(c.UserContext(), req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// ---- allocations ----

func listAllocations(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid := c.Query("resource_id"); rid != "" {
			as, err := svc.Allocations.ListByResource(c.UserContext(), rid)
			if err != nil {
				return err
			}
			return c.JSON(as)
		}
		as, err := svc.Allocations.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(as)
	}
}

func createAllocation(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in allocationInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		a, err := in.toDomain()
		if err != nil {
			return err
		}
		if err := svc.Allocations.Create(c.UserContext(), a); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ---- notifications ----

func listNotifications(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Query("user")
		if email == "" {
			u, err := svc.Auth.Me(c.UserContext())
			if err != nil {
				return err
			}
			email = u.Email
		}
		ns, err := svc.Notifications.List(c.UserContext(), email, c.QueryBool("unread"))
		if err != nil {
			return err
		}
		return c.JSON(ns)
	}
}

// ---- reports ----

func listMetrics(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defs := svc.Reports.Metrics()
		out := make([]fiber.Map, 0, len(defs))
		for _, d := range defs {
			out = append(out, fiber.Map{
				"key":         d.Key,
				"label":       d.Label,
				"entity":      d.Entity,
				"aggregation": d.Aggregation,
			})
		}
		return c.JSON(out)
	}
}

// reportRequest reads metric (comma separated) and the filters from the query string.
func reportRequest(c *fiber.Ctx) (contract.ReportRequest, error) {
	var keys []string
	for _, k := range strings.Split(c.Query("metric"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return contract.ReportRequest{}, fmt.Errorf("%w: metric is required", domain.ErrValidation)
	}
	req := contract.NewReportRequest(keys...)
	req.ProjectID = c.Query("project_id")
	req.From = c.Query("from")
	req.To = c.Query("to")
	return req, nil
}

func runReport(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := reportRequest(c)
		if err != nil {
			return err
		}
		resp, err := svc.Reports.Run(c.UserContext(), req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

func exportReport(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format, err := export.ParseFormat(c.Query("format"))
		if err != nil {
			return err
		}
		req, err := reportRequest(c)
		if err != nil {
			return err
		}
		resp, err := svc.Reports.Run(c.UserContext(), req)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, format, export.ReportTable(resp)); err != nil {
			return err
		}
		c.Attachment("report" + format.Extension())
		c.Set(fiber.HeaderContentType, format.ContentType())
		return c.Send(buf.Bytes())
	}
}

// ---- preferences ----

func getDashboard(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Preferences.Dashboard(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

func setDashboard(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dashboardInput
		if err := parseBody(c, &in); err != nil {
			return err
		}
		p, err := svc.Preferences.SetDashboard(c.UserContext(), in.Widgets)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// ---- functions ----

func invokeFunction(svc *app.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Functions.Invoke(c.UserContext(), c.Params("name"))
		if err != nil {
			return err
		}
		return c.JSON(out)
	}
}
